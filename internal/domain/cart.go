package domain

// LineItem is a single product entry in a cart. UnitPrice is in USD minor
// units (cents); the catalog's decimal prices are converted once at the
// backend parse boundary and never touched as floats after that.
type LineItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Cart is an ordered line-item collection. Items keep insertion order and
// product IDs are unique; quantities are always >= 1 (a quantity reaching
// zero removes the line entirely).
type Cart struct {
	Items []LineItem `json:"items"`
}

// FindIndex returns the index of the line item with the given product ID,
// or -1 if the cart has no such line.
func (c *Cart) FindIndex(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// TotalItems returns the sum of all line quantities.
func (c *Cart) TotalItems() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal returns the cart subtotal in cents. The sum is exact integer
// arithmetic; there is no per-line rounding step to accumulate error.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

// Clone returns a deep copy of the cart so callers can hand out snapshots
// without exposing the internal slice to mutation.
func (c *Cart) Clone() Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}
