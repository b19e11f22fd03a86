package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	ProductName   string         `json:"productName" gorm:"uniqueIndex;not null"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	StockQuantity int            `json:"stockQuantity" gorm:"default:0"`
	IsFeatured    bool           `json:"isFeatured" gorm:"default:false"`
	CategoryID    uint           `json:"categoryId" gorm:"not null"`
	Attributes    datatypes.JSON `json:"attributes"`
	Images        []ProductImage `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type ProductImage struct {
	gorm.Model
	Url       string `json:"url" binding:"required"`
	ProductID uint   `json:"productId" binding:"required"`
}
