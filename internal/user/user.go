package user

// Roles gate the order state machine: customers place and cancel their
// own orders, admins run the store, delivery agents move assigned
// orders through OUT_FOR_DELIVERY and DELIVERED.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
	RoleDelivery = "delivery"
)

type User struct {
	ID            int    `json:"userID"`
	Email         string `json:"email"`
	Password      string `json:"password,omitempty"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	PurchaseCount int    `json:"purchaseCount"`
	CreatedAt     string `json:"createdAt,omitempty"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}
