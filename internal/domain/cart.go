package domain

// CartLine is the persisted shape of one cart entry. At most one line per
// product id ever exists; quantity is clamped to >= 1 on every write.
type CartLine struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// EnrichedCartLine is a CartLine joined against the current catalog.
// It is produced on read and never persisted.
type EnrichedCartLine struct {
	CartLine
	Product   Product `json:"product"`
	LineTotal float64 `json:"lineTotal"`
}

// ClampQty normalizes a stored or requested quantity to the cart minimum.
func ClampQty(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
