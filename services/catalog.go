package services

import (
	"errors"
	"strings"

	"github.com/sokoni/sokoni-api/apperrors"
	"github.com/sokoni/sokoni-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func CreateCategory(db *gorm.DB, name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validationf("a valid category name is required")
	}

	var existing models.Category
	err := db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, apperrors.Conflictf("category already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal(err)
	}

	category := models.Category{Name: name, Description: description}
	if err := db.Create(&category).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &category, nil
}

func ListCategories(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	if err := db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return categories, nil
}

type ProductInput struct {
	ProductName   string         `json:"productName" binding:"required"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	StockQuantity int            `json:"stockQuantity"`
	CategoryID    uint           `json:"categoryId" binding:"required"`
	IsFeatured    bool           `json:"isFeatured"`
	Attributes    datatypes.JSON `json:"attributes"`
}

func CreateProduct(db *gorm.DB, input ProductInput) (*models.Product, error) {
	input.ProductName = strings.TrimSpace(input.ProductName)
	if input.ProductName == "" {
		return nil, apperrors.Validationf("a valid product name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.Validationf("product price cannot be negative")
	}
	if input.StockQuantity < 0 {
		return nil, apperrors.Validationf("stock quantity cannot be negative")
	}

	var existing models.Product
	err := db.Where("product_name = ?", input.ProductName).First(&existing).Error
	if err == nil {
		return nil, apperrors.Conflictf("a product with this name already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal(err)
	}

	if err := categoryExists(db, input.CategoryID); err != nil {
		return nil, err
	}

	product := models.Product{
		ProductName:   input.ProductName,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		IsFeatured:    input.IsFeatured,
		CategoryID:    input.CategoryID,
		Attributes:    input.Attributes,
	}
	if err := db.Create(&product).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &product, nil
}

// ProductUpdate carries a partial update; nil fields are left alone.
type ProductUpdate struct {
	ProductName   *string        `json:"productName"`
	Description   *string        `json:"description"`
	Price         *float64       `json:"price"`
	StockQuantity *int           `json:"stockQuantity"`
	CategoryID    *uint          `json:"categoryId"`
	Attributes    datatypes.JSON `json:"attributes"`
}

func UpdateProduct(db *gorm.DB, productID uint, update ProductUpdate) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("product not found")
		}
		return nil, apperrors.Internal(err)
	}

	fields := map[string]any{}

	if update.ProductName != nil {
		name := strings.TrimSpace(*update.ProductName)
		if name == "" {
			return nil, apperrors.Validationf("a valid product name is required")
		}
		if name != product.ProductName {
			var existing models.Product
			err := db.Where("product_name = ? AND id != ?", name, productID).First(&existing).Error
			if err == nil {
				return nil, apperrors.Conflictf("a product with this name already exists")
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Internal(err)
			}
		}
		fields["product_name"] = name
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Price != nil {
		if *update.Price < 0 {
			return nil, apperrors.Validationf("product price cannot be negative")
		}
		fields["price"] = *update.Price
	}
	if update.StockQuantity != nil {
		if *update.StockQuantity < 0 {
			return nil, apperrors.Validationf("stock quantity cannot be negative")
		}
		fields["stock_quantity"] = *update.StockQuantity
	}
	if update.CategoryID != nil {
		if err := categoryExists(db, *update.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *update.CategoryID
	}
	if update.Attributes != nil {
		fields["attributes"] = update.Attributes
	}

	if len(fields) > 0 {
		if err := db.Model(&product).Updates(fields).Error; err != nil {
			return nil, apperrors.Internal(err)
		}
	}

	if err := db.First(&product, productID).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &product, nil
}

// SetFeatured flips the featured flag independently of any other
// product mutation.
func SetFeatured(db *gorm.DB, productID uint, featured bool) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("product not found")
		}
		return nil, apperrors.Internal(err)
	}

	if err := db.Model(&product).Update("is_featured", featured).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	product.IsFeatured = featured
	return &product, nil
}

func GetProduct(db *gorm.DB, productID uint) (*models.Product, error) {
	var product models.Product
	if err := db.Preload("Images").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("product not found")
		}
		return nil, apperrors.Internal(err)
	}
	return &product, nil
}

func ListProducts(db *gorm.DB, page, limit int) ([]models.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}

	var products []models.Product
	err := db.Preload("Images").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return products, count, nil
}

func ListProductsByCategory(db *gorm.DB, categoryID uint) ([]models.Product, error) {
	if err := categoryExists(db, categoryID); err != nil {
		return nil, err
	}

	var products []models.Product
	if err := db.Preload("Images").Where("category_id = ?", categoryID).Find(&products).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return products, nil
}

// SearchFilter holds independent optional predicates that are ANDed
// together; zero values mean "not filtered".
type SearchFilter struct {
	Name     string
	MinPrice *float64
	MaxPrice *float64
	Category string
}

func SearchProducts(db *gorm.DB, filter SearchFilter) ([]models.Product, error) {
	query := db.Model(&models.Product{}).Select("products.*").Preload("Images")

	if filter.Name != "" {
		query = query.Where("product_name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Category != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.name = ?", filter.Category)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return products, nil
}

func categoryExists(db *gorm.DB, categoryID uint) error {
	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Validationf("the specified product category does not exist")
		}
		return apperrors.Internal(err)
	}
	return nil
}
