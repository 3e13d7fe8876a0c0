package address

// Address is a saved delivery location for a customer. Home-delivery
// orders are dropped at one of these.
type Address struct {
	ID        int    `json:"addressID"`
	UserID    int    `json:"userID"`
	Label     string `json:"label"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2,omitempty"`
	City      string `json:"city"`
	Pincode   string `json:"pincode"`
	Phone     string `json:"phone,omitempty"`
	IsDefault bool   `json:"isDefault"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
