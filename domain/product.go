package domain

// DefaultCategory is assigned to products created without a category label.
const DefaultCategory = "General"

// Product represents a listed item. VendorID references the owning Vendor but
// is not enforced at write time; readers must tolerate dangling references.
type Product struct {
	ID          int     `json:"id" yaml:"id"`
	VendorID    int     `json:"vendorId" yaml:"vendorId"`
	Name        string  `json:"name" yaml:"name"`
	Price       float64 `json:"price" yaml:"price"`
	Description string  `json:"description" yaml:"description"`
	ImageURL    string  `json:"imageUrl" yaml:"imageUrl"`
	ExternalURL string  `json:"externalUrl,omitempty" yaml:"externalUrl,omitempty"`
	Category    string  `json:"category" yaml:"category"`
}

// Normalize fills in defaults for optional fields.
func (product *Product) Normalize() {
	if product.Category == "" {
		product.Category = DefaultCategory
	}
}
