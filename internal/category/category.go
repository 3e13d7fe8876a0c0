package category

// Category groups products in the storefront. Subcategories hang off a
// parent category; products carry both ids.
type Category struct {
	ID            int           `json:"categoryID"`
	Name          string        `json:"name"`
	Image         string        `json:"image,omitempty"`
	Ord           int           `json:"ord"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

type Subcategory struct {
	ID         int    `json:"subcategoryID"`
	CategoryID int    `json:"categoryID"`
	Name       string `json:"name"`
}
