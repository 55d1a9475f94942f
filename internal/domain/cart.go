package domain

type CartItem struct {
	Product  Product
	Quantity int
}

// Cart mirrors the storefront cart: one line per product id.
type Cart struct {
	Items []CartItem
}

// Add appends a line or increases the quantity of an existing one. Sold out
// products and non-positive quantities are ignored.
func (c *Cart) Add(product Product, quantity int) {
	if product.SoldOut || quantity < 1 {
		return
	}

	for i := range c.Items {
		if c.Items[i].Product.ID == product.ID {
			c.Items[i].Quantity += quantity
			return
		}
	}

	c.Items = append(c.Items, CartItem{Product: product, Quantity: quantity})
}

func (c *Cart) Remove(productID string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// UpdateQuantity sets the quantity of a line, never below 1.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items[i].Quantity = quantity
		}
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Product.Price * int64(item.Quantity)
	}
	return total
}
