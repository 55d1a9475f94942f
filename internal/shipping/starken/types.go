package starken

// Locality is one row of the Starken locality table.
type Locality struct {
	CityCode int    `json:"CIUDCODIGO"`
	Comuna   string `json:"COMUNA"`
}

type tokenResponse struct {
	UUIDUser string `json:"uuid_user"`
}

type localitiesResponse struct {
	Data []Locality `json:"data"`
}

type parcelLine struct {
	Alto  int     `json:"alto"`
	Largo int     `json:"largo"`
	Ancho int     `json:"ancho"`
	Kilos float64 `json:"kilos"`
}

type quoteRequest struct {
	CodigoCiudadOrigen  int          `json:"codigoCiudadOrigen"`
	CodigoCiudadDestino int          `json:"codigoCiudadDestino"`
	Encargos            []parcelLine `json:"encargos"`
	ValorDeclarado      int64        `json:"valorDeclarado"`
	UUID                string       `json:"uuid"`
}

type tariff struct {
	IDTarifa        int     `json:"idTarifa"`
	Nombre          string  `json:"nombre"`
	TipoEntrega     string  `json:"tipoEntrega"`
	TipoServicio    string  `json:"tipoServicio"`
	TipoPago        *string `json:"tipoPago"`
	Tarifa          float64 `json:"tarifa"`
	DiasEntrega     int     `json:"diasEntrega"`
	FechaCompromiso *string `json:"fechaCompromiso"`
}

type quoteResponse struct {
	Status int `json:"status"`
	Data   *struct {
		Tarifa []tariff `json:"tarifa"`
	} `json:"data"`
}
