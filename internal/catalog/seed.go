package catalog

func int64Ptr(v int64) *int64 {
	return &v
}

// SeedProducts returns the built-in demo catalog.
func SeedProducts() []Product {
	return []Product{
		{
			ID:                  "1",
			Name:                "Premium Wireless Headphones",
			Slug:                "premium-wireless-headphones",
			Description:         "Crystal-clear audio with active noise cancellation, 30-hour battery life, and premium comfort.",
			PriceCents:          29999,
			CompareAtPriceCents: int64Ptr(39999),
			CategoryID:          "1",
			Brand:               "AudioTech",
			SKU:                 "AT-WH-001",
			StockQuantity:       50,
			Images: []string{
				"https://images.pexels.com/photos/3587478/pexels-photo-3587478.jpeg?auto=compress&cs=tinysrgb&w=800",
				"https://images.pexels.com/photos/3394650/pexels-photo-3394650.jpeg?auto=compress&cs=tinysrgb&w=800",
			},
			Specifications: map[string]string{
				"Battery Life":       "30 hours",
				"Connectivity":       "Bluetooth 5.0",
				"Noise Cancellation": "Active",
				"Weight":             "250g",
				"Warranty":           "2 years",
			},
			IsActive:      true,
			AverageRating: 4.5,
			ReviewCount:   128,
		},
		{
			ID:            "2",
			Name:          "Smart Fitness Watch",
			Slug:          "smart-fitness-watch",
			Description:   "Advanced sensors, GPS, heart rate monitoring, and 7-day battery life. Water-resistant and stylish.",
			PriceCents:    19999,
			CategoryID:    "1",
			Brand:         "FitPro",
			SKU:           "FP-SW-002",
			StockQuantity: 75,
			Images: []string{
				"https://images.pexels.com/photos/437037/pexels-photo-437037.jpeg?auto=compress&cs=tinysrgb&w=800",
				"https://images.pexels.com/photos/393047/pexels-photo-393047.jpeg?auto=compress&cs=tinysrgb&w=800",
			},
			Specifications: map[string]string{
				"Display":          "1.4\" AMOLED",
				"Battery":          "7 days",
				"Water Resistance": "5ATM",
				"Sensors":          "Heart Rate, GPS, SpO2",
				"Compatibility":    "iOS & Android",
			},
			IsActive:      true,
			AverageRating: 4.3,
			ReviewCount:   89,
		},
		{
			ID:                  "3",
			Name:                "Leather Crossbody Bag",
			Slug:                "leather-crossbody-bag",
			Description:         "Elegant genuine leather bag with multiple compartments, handcrafted with attention to detail.",
			PriceCents:          8999,
			CompareAtPriceCents: int64Ptr(12999),
			CategoryID:          "2",
			Brand:               "StyleCraft",
			SKU:                 "SC-LB-003",
			StockQuantity:       30,
			Images: []string{
				"https://images.pexels.com/photos/1152077/pexels-photo-1152077.jpeg?auto=compress&cs=tinysrgb&w=800",
				"https://images.pexels.com/photos/1038000/pexels-photo-1038000.jpeg?auto=compress&cs=tinysrgb&w=800",
			},
			Specifications: map[string]string{
				"Material":   "Genuine Leather",
				"Dimensions": "25cm x 20cm x 8cm",
				"Strap":      "Adjustable",
				"Color":      "Brown",
			},
			IsActive:      true,
			AverageRating: 4.7,
			ReviewCount:   45,
		},
		{
			ID:            "4",
			Name:          "Stainless Steel Coffee Maker",
			Slug:          "stainless-steel-coffee-maker",
			Description:   "Programmable 12-cup coffee maker with thermal carafe, auto-shutoff and brew strength control.",
			PriceCents:    7999,
			CategoryID:    "3",
			Brand:         "BrewMaster",
			SKU:           "BM-CM-004",
			StockQuantity: 40,
			Images: []string{
				"https://images.pexels.com/photos/324028/pexels-photo-324028.jpeg?auto=compress&cs=tinysrgb&w=800",
				"https://images.pexels.com/photos/1251176/pexels-photo-1251176.jpeg?auto=compress&cs=tinysrgb&w=800",
			},
			Specifications: map[string]string{
				"Capacity": "12 cups",
				"Material": "Stainless Steel",
				"Features": "Programmable, Auto-shutoff",
				"Power":    "900W",
			},
			IsActive:      true,
			AverageRating: 4.4,
			ReviewCount:   67,
		},
		{
			ID:            "5",
			Name:          "Trail Running Shoes",
			Slug:          "trail-running-shoes",
			Description:   "Lightweight trail shoes with aggressive grip, rock protection, and breathable mesh upper.",
			PriceCents:    12499,
			CategoryID:    "5",
			Brand:         "PeakStride",
			SKU:           "PS-TR-005",
			StockQuantity: 60,
			Images: []string{
				"https://images.pexels.com/photos/2529148/pexels-photo-2529148.jpeg?auto=compress&cs=tinysrgb&w=800",
			},
			Specifications: map[string]string{
				"Drop":   "6mm",
				"Weight": "280g",
				"Upper":  "Breathable mesh",
			},
			IsActive:      true,
			AverageRating: 4.6,
			ReviewCount:   52,
		},
		{
			ID:            "6",
			Name:          "Vitamin C Facial Serum",
			Slug:          "vitamin-c-facial-serum",
			Description:   "Brightening serum with 15% vitamin C, hyaluronic acid, and vitamin E for daily use.",
			PriceCents:    2499,
			CategoryID:    "6",
			Brand:         "GlowLab",
			SKU:           "GL-VS-006",
			StockQuantity: 120,
			Images: []string{
				"https://images.pexels.com/photos/3685530/pexels-photo-3685530.jpeg?auto=compress&cs=tinysrgb&w=800",
			},
			Specifications: map[string]string{
				"Volume":       "30ml",
				"Key Actives":  "15% Vitamin C, Hyaluronic Acid",
				"Skin Type":    "All",
				"Cruelty Free": "Yes",
			},
			IsActive:      true,
			AverageRating: 4.2,
			ReviewCount:   210,
		},
	}
}

// SeedCategories returns the built-in category tree.
func SeedCategories() []Category {
	return []Category{
		{ID: "1", Name: "Electronics", Slug: "electronics", Description: "Latest gadgets and electronic devices"},
		{ID: "2", Name: "Fashion", Slug: "fashion", Description: "Trendy clothing and accessories"},
		{ID: "3", Name: "Home & Kitchen", Slug: "home-kitchen", Description: "Everything for your home"},
		{ID: "4", Name: "Books", Slug: "books", Description: "Bestsellers and classics"},
		{ID: "5", Name: "Sports & Outdoors", Slug: "sports-outdoors", Description: "Gear for active lifestyles"},
		{ID: "6", Name: "Beauty & Personal Care", Slug: "beauty", Description: "Cosmetics and personal care products"},
	}
}

// SeedReviews returns the built-in demo reviews.
func SeedReviews() []Review {
	return []Review{
		{
			ID:               "r1",
			ProductID:        "1",
			UserName:         "Maya R.",
			Rating:           5,
			Title:            "Best headphones I have owned",
			Comment:          "The noise cancellation is superb on flights.",
			VerifiedPurchase: true,
			HelpfulCount:     34,
			CreatedAt:        "2025-06-14T09:30:00Z",
		},
		{
			ID:               "r2",
			ProductID:        "1",
			UserName:         "Devon K.",
			Rating:           4,
			Comment:          "Great sound, a little tight after long sessions.",
			VerifiedPurchase: true,
			HelpfulCount:     12,
			CreatedAt:        "2025-07-02T18:12:00Z",
		},
		{
			ID:               "r3",
			ProductID:        "4",
			UserName:         "Priya S.",
			Rating:           4,
			Title:            "Solid morning workhorse",
			Comment:          "Coffee stays hot for hours in the thermal carafe.",
			VerifiedPurchase: false,
			HelpfulCount:     8,
			CreatedAt:        "2025-05-21T07:45:00Z",
		},
	}
}

// NewSeededProvider wires the demo catalog into a provider.
func NewSeededProvider() (Provider, error) {
	return NewMemoryProvider(SeedProducts(), SeedCategories(), SeedReviews())
}
