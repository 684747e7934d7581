package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ImportProductsFromExcel accepts the same rows as the CSV import but
// from the first sheet of an .xlsx workbook, columns in template order:
// name, description, price, category, gender, sizes, stock_quantity,
// is_featured, is_new, images.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount := 0
		var results []RowResult

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			product, err := buildProduct(productRow{
				Name:          get(0),
				Description:   get(1),
				Price:         get(2),
				Category:      get(3),
				Gender:        get(4),
				Sizes:         get(5),
				StockQuantity: get(6),
				IsFeatured:    get(7),
				IsNew:         get(8),
				Images:        get(9),
			})
			if err != nil {
				results = append(results, RowResult{Row: i, Status: "rejected", Reason: err.Error()})
				continue
			}
			if err := db.Create(product).Error; err != nil {
				results = append(results, RowResult{Row: i, Status: "rejected", Reason: "insert failed"})
				continue
			}
			createdCount++
			results = append(results, RowResult{Row: i, Status: "accepted"})
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"results":       results,
		})
	}
}
