package productcontroller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chuta/ejijikobi/models"
)

// productRow holds one raw import row before validation. CSV and Excel
// uploads both funnel through buildProduct so the row contract is
// identical for either format.
type productRow struct {
	Name          string
	Description   string
	Price         string
	Category      string
	Gender        string
	Sizes         string
	StockQuantity string
	IsFeatured    string
	IsNew         string
	Images        string
}

// RowResult reports the fate of one import row. Row is 1-based and
// counts data rows (the header row is row 0).
type RowResult struct {
	Row    int    `json:"row"`
	Status string `json:"status"` // "accepted" or "rejected"
	Reason string `json:"reason,omitempty"`
}

// splitList splits a comma-separated cell, trimming whitespace and
// preserving source order. No deduplication.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// buildProduct validates a raw row and converts it into a Product.
// Required: name, description, integer price, category, gender, sizes,
// integer stock. Flags default to false and images to empty.
func buildProduct(row productRow) (*models.Product, error) {
	if strings.TrimSpace(row.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if strings.TrimSpace(row.Description) == "" {
		return nil, fmt.Errorf("description is required")
	}
	price, err := strconv.ParseInt(strings.TrimSpace(row.Price), 10, 64)
	if err != nil || price < 1 {
		return nil, fmt.Errorf("price must be a positive integer in minor units")
	}
	category, err := models.ParseCategory(strings.TrimSpace(row.Category))
	if err != nil {
		return nil, fmt.Errorf("unknown category %q", row.Category)
	}
	gender, err := models.ParseGender(strings.TrimSpace(row.Gender))
	if err != nil {
		return nil, fmt.Errorf("unknown gender %q", row.Gender)
	}
	sizes := splitList(row.Sizes)
	if len(sizes) == 0 {
		return nil, fmt.Errorf("sizes is required")
	}
	stock, err := strconv.Atoi(strings.TrimSpace(row.StockQuantity))
	if err != nil || stock < 0 {
		return nil, fmt.Errorf("stock_quantity must be a non-negative integer")
	}

	return &models.Product{
		Name:          strings.TrimSpace(row.Name),
		Description:   strings.TrimSpace(row.Description),
		Price:         price,
		Category:      category,
		Gender:        gender,
		Sizes:         sizes,
		StockQuantity: stock,
		IsFeatured:    strings.EqualFold(strings.TrimSpace(row.IsFeatured), "true"),
		IsNew:         strings.EqualFold(strings.TrimSpace(row.IsNew), "true"),
		Images:        splitList(row.Images),
	}, nil
}
