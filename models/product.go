package models

// Product is a catalog entry. The admin pages edit the same shape and keep
// their copy under the "adminProducts" local-storage key.
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name" validate:"required,max=200"`
	Price          float64           `json:"price" validate:"gt=0"`
	OriginalPrice  *float64          `json:"originalPrice,omitempty" validate:"omitempty,gt=0"`
	Rating         float64           `json:"rating" validate:"gte=0,lte=5"`
	Reviews        int               `json:"reviews" validate:"gte=0"`
	Category       string            `json:"category" validate:"required"`
	Discount       string            `json:"discount,omitempty"`
	Image          string            `json:"image"`
	Description    string            `json:"description"`
	Features       []string          `json:"features,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	OnOffer        bool              `json:"onOffer"`
	BigOffer       bool              `json:"bigOffer"`
}

// Sort orders offered by the products page.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
)

// AllCategories selects every category.
const AllCategories = "All"

// ProductQuery filters, orders and pages a product listing.
type ProductQuery struct {
	Category string `form:"category"`
	Sort     string `form:"sort" binding:"omitempty,oneof=featured price-low price-high rating"`
	OnOffer  bool   `form:"on_offer"`
	BigOffer bool   `form:"big_offer"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1"`
}

// PresignRequest is the payload for POST /api/admin/products/uploads.
type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// PresignResponse describes where the client must PUT an image.
type PresignResponse struct {
	URL     string            `json:"url"`
	Key     string            `json:"key"`
	Headers map[string]string `json:"headers,omitempty"`
}
