package seed

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"mesa/internal/models"
	"mesa/internal/observability"

	"github.com/spf13/afero"
	"gorm.io/gorm"
)

// ImportRestaurants loads the restaurant catalog CSV into the relational
// store. Rows with unparseable numeric fields are skipped and counted, not
// fatal.
func ImportRestaurants(fs afero.Fs, db *gorm.DB, path string) (imported, skipped int, err error) {
	f, err := fs.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening restaurant csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return 0, 0, fmt.Errorf("reading restaurant csv: %w", err)
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}

	col := indexColumns(rows[0])
	batch := make([]models.Restaurant, 0, 500)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := db.Create(&batch).Error; err != nil {
			return fmt.Errorf("inserting restaurants: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for _, row := range rows[1:] {
		restaurant, ok := parseRestaurant(row, col)
		if !ok {
			skipped++
			continue
		}
		batch = append(batch, restaurant)
		imported++
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				return imported, skipped, err
			}
		}
	}
	if err := flush(); err != nil {
		return imported, skipped, err
	}

	observability.GlobalLogger.Info("restaurant import complete",
		"imported", imported,
		"skipped", skipped,
	)
	return imported, skipped, nil
}

func indexColumns(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	return col
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseRestaurant(row []string, col map[string]int) (models.Restaurant, bool) {
	name := field(row, col, "Name")
	if name == "" {
		return models.Restaurant{}, false
	}

	restaurant := models.Restaurant{
		Name:         name,
		City:         field(row, col, "City"),
		CuisineStyle: field(row, col, "Cuisine Style"),
		PriceRange:   field(row, col, "Price Range"),
		Reviews:      field(row, col, "Reviews"),
		URLTA:        field(row, col, "URL_TA"),
		IDTA:         field(row, col, "ID_TA"),
	}

	if s := field(row, col, "Rating"); s != "" && s != "NaN" {
		rating, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.Restaurant{}, false
		}
		restaurant.Rating = &rating
	}
	if s := field(row, col, "Number of Reviews"); s != "" && s != "NaN" {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.Restaurant{}, false
		}
		count := int(n)
		restaurant.NumberOfReviews = &count
	}
	return restaurant, true
}
