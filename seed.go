package aurahub

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aura-hub/aurahub/domain"
)

// Seed data is the fixed baseline shipped with the hub. It is always present
// in the merged view regardless of what the persisted collections contain.

// SeedVendors returns the baseline vendor records.
func SeedVendors() []domain.Vendor {
	return []domain.Vendor{
		{
			ID:           1,
			Name:         "Royal Bengal Looms (রয়েল বেঙ্গল লুমস)",
			Slug:         "royal-bengal-looms",
			WebsiteURL:   "https://example.com/royal-bengal",
			Status:       domain.VendorApproved,
			Description:  "ঐতিহ্যবাহী জামদানি এবং মসলিন তাঁতশিল্পের গৌরব। Heritage weavers of Bangladesh.",
			TradeLicense: "TRD-2024-8899",
		},
		{
			ID:           2,
			Name:         "Urban Dhaka Streetwear (আরবান ঢাকা)",
			Slug:         "urban-dhaka",
			WebsiteURL:   "https://example.com/urban-dhaka",
			Status:       domain.VendorApproved,
			Description:  "Gen Z-এর জন্য মডার্ন ওভারসাইজ টি-শার্ট এবং হুডি।",
			TradeLicense: "TRD-2024-1122",
		},
		{
			ID:           3,
			Name:         "Shadow Market",
			Slug:         "shadow-market",
			Status:       domain.VendorBlocked,
			Description:  "Unverified seller detected by Aura Governance.",
			TradeLicense: "INVALID",
		},
	}
}

// SeedProducts returns the baseline product records.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          101,
			VendorID:    1,
			Name:        "Midnight Black জামদানি শাড়ি",
			Price:       15500,
			Description: "হাতে বোনা ১০০ কাউন্ট সুতার সাথে গোল্ড জড়ি কাজ। A masterpiece of Dhakai Jamdani.",
			ImageURL:    "https://images.unsplash.com/photo-1610189012906-4783fda36799?q=80&w=800&auto=format&fit=crop",
			ExternalURL: "https://example.com/royal-bengal/p/jamdani-black",
			Category:    "Saree",
		},
		{
			ID:          102,
			VendorID:    1,
			Name:        "Heritage মসলিন পাঞ্জাবি",
			Price:       8500,
			Description: "রাজকীয় উৎসবের জন্য অথেনটিক ঢাকাই মসলিন।",
			ImageURL:    "https://images.unsplash.com/photo-1631640989396-b1836a04e386?q=80&w=800&auto=format&fit=crop",
			Category:    "Panjabi",
		},
		{
			ID:          201,
			VendorID:    2,
			Name:        "Neon Cyberpunk Hoodie",
			Price:       2200,
			Description: "হেভিওয়েট কটন ফ্লিস এবং পাফ প্রিন্ট ডিজাইন।",
			ImageURL:    "https://images.unsplash.com/photo-1556821840-3a63f95609a7?q=80&w=800&auto=format&fit=crop",
			ExternalURL: "https://example.com/urban-dhaka/p/neon-hoodie",
			Category:    "Hoodie",
		},
	}
}

// SeedOrders returns the baseline order records.
func SeedOrders() []domain.Order {
	products := SeedProducts()
	return []domain.Order{
		{
			ID:                "ORD-5001",
			CustomerName:      "Rahim Ahmed",
			TotalAmount:       17700,
			Items:             []domain.Product{products[0], products[2]},
			CurrentStatus:     domain.OrderShipped,
			EstimatedDelivery: "24 Feb, 2025",
			Timeline: domain.Timeline{
				{Status: domain.OrderPlaced, Label: "অর্ডার প্লেস করা হয়েছে", Timestamp: "20 Feb, 10:00 AM", Completed: true, Description: "Customer placed order via Aura Hub"},
				{Status: domain.OrderConfirmed, Label: "ভেন্ডর কনফার্মেশন", Timestamp: "20 Feb, 10:30 AM", Completed: true, Description: "Royal Bengal Looms accepted the request"},
				{Status: domain.OrderQualityCheck, Label: "Aura কোয়ালিটি চেক", Timestamp: "21 Feb, 02:15 PM", Completed: true, Description: "Passes Aura Governance Standards (Thread Count: 100)"},
				{Status: domain.OrderShipped, Label: "শিপিং-এর জন্য প্রস্তুত", Timestamp: "22 Feb, 09:00 AM", Completed: true, Description: "Handed over to Pathao Courier"},
				{Status: domain.OrderDelivered, Label: "ডেলিভারি সম্পন্ন", Timestamp: "-", Completed: false, Description: "Estimated: 24 Feb"},
			},
		},
	}
}

// SeedStats returns the static ecosystem aggregate record.
func SeedStats() domain.EcosystemStats {
	return domain.EcosystemStats{
		TotalVendors:   1250,
		ActiveProducts: 45000,
		MonthlyVolume:  8500000,
		AIInteractions: 120000,
		TrendForecast: []domain.TrendForecast{
			{Year: "2025", Trend: "Hyper-Local Craft Revival", Growth: 45},
			{Year: "2026", Trend: "AR/VR Shopping Standard", Growth: 120},
			{Year: "2027", Trend: "Carbon Neutral Logistics", Growth: 85},
			{Year: "2028", Trend: "Aura Automated Supply Chain", Growth: 200},
		},
	}
}

// seedOverlay is the shape of an optional seed.yaml file. Records listed there
// are appended to the built-in seed data at store construction time.
type seedOverlay struct {
	Vendors  []domain.Vendor  `yaml:"vendors"`
	Products []domain.Product `yaml:"products"`
	Orders   []domain.Order   `yaml:"orders"`
}

func loadSeedOverlay(path string) (*seedOverlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading seed overlay %s : %w", path, err)
	}

	var overlay seedOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("unmarshalling seed overlay : %w", err)
	}
	return &overlay, nil
}
