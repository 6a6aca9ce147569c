package domain

// VendorStatus is the approval state of a vendor within the hub.
type VendorStatus string

const (
	// VendorApproved marks a vendor that passed governance screening and may trade.
	VendorApproved VendorStatus = "APPROVED"
	// VendorPending marks a vendor awaiting manual review.
	VendorPending VendorStatus = "PENDING"
	// VendorBlocked marks a vendor rejected by governance screening.
	VendorBlocked VendorStatus = "BLOCKED"
)

// Vendor represents a storefront owner on the hub.
// The Slug is the only lookup key for public storefront routing and is
// expected to be unique and stable for the vendor's lifetime.
type Vendor struct {
	ID           int          `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Slug         string       `json:"slug" yaml:"slug"`
	WebsiteURL   string       `json:"websiteUrl,omitempty" yaml:"websiteUrl,omitempty"`
	Status       VendorStatus `json:"status" yaml:"status"`
	Description  string       `json:"description" yaml:"description"`
	TradeLicense string       `json:"tradeLicense,omitempty" yaml:"tradeLicense,omitempty"`
}
