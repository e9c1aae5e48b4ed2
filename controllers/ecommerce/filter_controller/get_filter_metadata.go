package filter_controller

import (
	"net/http"
	"sync"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetFilterMetadata godoc
// @Summary Get all filter metadata
// @Description Returns availability counts, categories, vendors, tags and price range for storefront filters
// @Tags store
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.FilterMetadata}
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/filters/metadata [get]
func GetFilterMetadata(c *gin.Context) {
	db := config.StoreGorm

	// Run the independent lookups concurrently
	var wg sync.WaitGroup
	var mu sync.Mutex

	metadata := &models.FilterMetadata{}
	var errs []error

	collect := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := fn()
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
			}
		}()
	}

	collect(func() error {
		availability, err := getAvailabilityCounts(db)
		if err == nil {
			metadata.Availability = availability
		}
		return err
	})
	collect(func() error {
		categories, err := getCategoryTree(db)
		if err == nil {
			metadata.Categories = categories
		}
		return err
	})
	collect(func() error {
		vendors, err := getVendorOptions(db)
		if err == nil {
			metadata.Vendors = vendors
		}
		return err
	})
	collect(func() error {
		tags, err := getDistinctTags(db)
		if err == nil {
			metadata.Tags = tags
		}
		return err
	})
	collect(func() error {
		priceRange, err := getPriceRange(db)
		if err == nil {
			metadata.PriceRange = priceRange
		}
		return err
	})

	wg.Wait()

	if len(errs) > 0 {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to build filter metadata"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter metadata fetched successfully", metadata))
}

func getAvailabilityCounts(db *gorm.DB) (*models.AvailabilityData, error) {
	inStockClause := `EXISTS (
		SELECT 1 FROM product_variants pv
		JOIN inventory_records ir ON ir.variant_id = pv.id
		WHERE pv.product_id = products.id AND ir.available > 0
	)`

	var inStock, total int64
	if err := db.Model(&models.Product{}).
		Where("status = ?", models.ProductStatusActive).
		Count(&total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).
		Where("status = ?", models.ProductStatusActive).
		Where(inStockClause).
		Count(&inStock).Error; err != nil {
		return nil, err
	}

	return &models.AvailabilityData{
		InStock:    int(inStock),
		OutOfStock: int(total - inStock),
	}, nil
}

func getCategoryTree(db *gorm.DB) ([]models.CategoryData, error) {
	categories := make([]models.Category, 0)
	if err := db.Where("active = ?", true).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	children := make(map[string][]models.CategoryData)
	roots := make([]models.CategoryData, 0)
	for _, category := range categories {
		data := models.CategoryData{
			ID:   category.ID.String(),
			Name: category.Name,
			Slug: category.Slug,
		}
		if category.ParentID != nil {
			data.ParentID = category.ParentID.String()
			children[data.ParentID] = append(children[data.ParentID], data)
		} else {
			roots = append(roots, data)
		}
	}
	for i := range roots {
		roots[i].Subcategories = children[roots[i].ID]
	}
	return roots, nil
}

func getVendorOptions(db *gorm.DB) ([]models.VendorData, error) {
	vendors := make([]models.Vendor, 0)
	if err := db.Order("name ASC").Find(&vendors).Error; err != nil {
		return nil, err
	}

	options := make([]models.VendorData, 0, len(vendors))
	for _, vendor := range vendors {
		options = append(options, models.VendorData{
			ID:   vendor.ID.String(),
			Name: vendor.Name,
			Slug: vendor.Slug,
		})
	}
	return options, nil
}

func getDistinctTags(db *gorm.DB) ([]string, error) {
	tags := make([]string, 0)
	err := db.Raw(`
		SELECT DISTINCT tag
		FROM products, jsonb_array_elements_text(tags) AS tag
		WHERE status = 'active'
		ORDER BY tag
	`).Scan(&tags).Error
	return tags, err
}

func getPriceRange(db *gorm.DB) (*models.PriceRangeData, error) {
	var priceRange models.PriceRangeData
	err := db.Model(&models.Product{}).
		Where("status = ?", models.ProductStatusActive).
		Select("COALESCE(MIN(price), 0) AS min, COALESCE(MAX(price), 0) AS max").
		Scan(&priceRange).Error
	if err != nil {
		return nil, err
	}
	return &priceRange, nil
}
