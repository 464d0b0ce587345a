package domain

// Product is a catalog entry as served by the backend, with the decimal USD
// price already converted to cents.
type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Brand        string `json:"brand,omitempty"`
	Description  string `json:"description,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	PriceCents   int64  `json:"price_cents"`
	CountInStock int    `json:"count_in_stock"`
}

// LineItemFor builds the cart line for this product at the given quantity.
func (p Product) LineItemFor(quantity int) LineItem {
	return LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.PriceCents,
		Quantity:  quantity,
		ImageURL:  p.ImageURL,
	}
}
