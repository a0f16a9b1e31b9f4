package models

// Restaurant is a catalog row imported from the TripAdvisor dataset. Unlike
// the social tables it lives in the embedded SQL catalog, not in a flat file.
type Restaurant struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	Name            string   `gorm:"size:255;not null;index" json:"name"`
	City            string   `gorm:"size:255;index" json:"city"`
	CuisineStyle    string   `gorm:"type:text" json:"cuisine_style"`
	Rating          *float64 `json:"rating"`
	PriceRange      string   `gorm:"size:20" json:"price_range"`
	NumberOfReviews *int     `json:"number_of_reviews"`
	Reviews         string   `gorm:"type:text" json:"reviews"`
	URLTA           string   `gorm:"column:url_ta" json:"url_ta"`
	IDTA            string   `gorm:"column:id_ta;size:50" json:"id_ta"`
}

// TableName specifies the table name for GORM
func (Restaurant) TableName() string {
	return "restaurants"
}
