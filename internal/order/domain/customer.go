package domain

import "time"

// Customer is keyed by the prefix-free canonical phone (Phone.StoreKey).
// Subsequent orders from the same phone overwrite name, address and
// reference in place; customers are never deleted here.
type Customer struct {
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
