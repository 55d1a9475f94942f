package product

import (
	"database/sql"

	"praktico/internal/product/repository"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLRepository(db)
	svc := NewCartService(repo, logger)
	return NewController(svc, logger)
}
