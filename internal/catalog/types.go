package catalog

// Product is an immutable catalog record. Prices are integer cents.
type Product struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	Slug                string            `json:"slug"`
	Description         string            `json:"description"`
	PriceCents          int64             `json:"price_cents"`
	CompareAtPriceCents *int64            `json:"compare_at_price_cents,omitempty"`
	CategoryID          string            `json:"category_id"`
	Brand               string            `json:"brand"`
	SKU                 string            `json:"sku"`
	StockQuantity       int               `json:"stock_quantity"`
	Images              []string          `json:"images"`
	Specifications      map[string]string `json:"specifications"`
	IsActive            bool              `json:"is_active"`
	AverageRating       float64           `json:"average_rating"`
	ReviewCount         int               `json:"review_count"`
}

// FeaturedImage returns the first image, the one shown on cards and order lines.
func (p Product) FeaturedImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Category groups products for browsing.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
}

// Review is a customer review attached to a product.
type Review struct {
	ID                string `json:"id"`
	ProductID         string `json:"product_id"`
	UserName          string `json:"user_name"`
	Rating            int    `json:"rating"`
	Title             string `json:"title,omitempty"`
	Comment           string `json:"comment,omitempty"`
	VerifiedPurchase  bool   `json:"verified_purchase"`
	HelpfulCount      int    `json:"helpful_count"`
	CreatedAt         string `json:"created_at"`
}
