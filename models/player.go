package models

// Player is one entry of the immutable roster. IDs are dense, starting at 0,
// assigned in roster declaration order.
type Player struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
