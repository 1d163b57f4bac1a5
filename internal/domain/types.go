package domain

// Item is a pantry entry. ID is the item name and doubles as the store key.
// Quantity is always >= 1 while the item exists.
type Item struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}
