package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"mesa/internal/models"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

// RestaurantService serves the read-only restaurant catalog out of the
// relational store.
type RestaurantService struct {
	db *gorm.DB
}

// NewRestaurantService creates a new restaurant catalog service.
func NewRestaurantService(db *gorm.DB) *RestaurantService {
	return &RestaurantService{db: db}
}

// RestaurantPage is one page of catalog results.
type RestaurantPage struct {
	Restaurants []models.Restaurant `json:"restaurants"`
	Total       int64               `json:"total"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
}

// Search returns a page of restaurants. A non-empty query matches name,
// city, or cuisine style, case-insensitively.
func (s *RestaurantService) Search(ctx context.Context, query string, page, pageSize int) (*RestaurantPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	tx := s.db.WithContext(ctx).Model(&models.Restaurant{})
	if q := strings.TrimSpace(query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where(
			"LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(cuisine_style) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var restaurants []models.Restaurant
	if err := tx.Order("id").Limit(pageSize).Offset((page - 1) * pageSize).Find(&restaurants).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range restaurants {
		restaurants[i].CuisineStyle = CleanCuisineStyle(restaurants[i].CuisineStyle)
	}
	return &RestaurantPage{
		Restaurants: restaurants,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
	}, nil
}

// Get returns one restaurant by id.
func (s *RestaurantService) Get(ctx context.Context, id uint) (*models.Restaurant, error) {
	var r models.Restaurant
	err := s.db.WithContext(ctx).First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("restaurant", "")
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	r.CuisineStyle = CleanCuisineStyle(r.CuisineStyle)
	return &r, nil
}

// CleanCuisineStyle strips the list-literal notation the source dataset uses
// for cuisine styles, turning "['Italian', 'Pizza']" into "Italian, Pizza".
func CleanCuisineStyle(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	parts := strings.Split(s, ",")
	cleaned := parts[:0]
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), "'\"")
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, ", ")
}
