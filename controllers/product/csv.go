package productcontroller

import (
	"encoding/csv"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// csvColumns is the expected header set for bulk uploads, matching the
// downloadable template.
var csvColumns = []string{
	"name", "description", "price", "category", "gender",
	"sizes", "stock_quantity", "is_featured", "is_new", "images",
}

// ImportProductsFromCSV handles POST /admin/products/import with a
// multipart "file" field. Each data row is validated individually and
// reported as accepted or rejected; valid rows are inserted, bad rows
// never reach the database.
func ImportProductsFromCSV(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "CSV file is required"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to open CSV file"})
			return
		}
		defer file.Close()

		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1

		header, err := reader.Read()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to parse CSV file"})
			return
		}
		col := map[string]int{}
		for i, name := range header {
			col[strings.ToLower(strings.TrimSpace(name))] = i
		}
		for _, required := range csvColumns[:7] {
			if _, ok := col[required]; !ok {
				c.JSON(http.StatusBadRequest, gin.H{"message": "CSV header missing column: " + required})
				return
			}
		}

		get := func(record []string, name string) string {
			i, ok := col[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		createdCount := 0
		var results []RowResult
		for rowNum := 1; ; rowNum++ {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to parse CSV file"})
				return
			}

			row := productRow{
				Name:          get(record, "name"),
				Description:   get(record, "description"),
				Price:         get(record, "price"),
				Category:      get(record, "category"),
				Gender:        get(record, "gender"),
				Sizes:         get(record, "sizes"),
				StockQuantity: get(record, "stock_quantity"),
				IsFeatured:    get(record, "is_featured"),
				IsNew:         get(record, "is_new"),
				Images:        get(record, "images"),
			}

			product, err := buildProduct(row)
			if err != nil {
				results = append(results, RowResult{Row: rowNum, Status: "rejected", Reason: err.Error()})
				continue
			}
			if err := db.Create(product).Error; err != nil {
				results = append(results, RowResult{Row: rowNum, Status: "rejected", Reason: "insert failed"})
				continue
			}
			createdCount++
			results = append(results, RowResult{Row: rowNum, Status: "accepted"})
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"results":       results,
		})
	}
}
