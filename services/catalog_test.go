package services

import (
	"testing"

	"github.com/sokoni/sokoni-api/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryUniqueness(t *testing.T) {
	db := newTestDB(t)

	category, err := CreateCategory(db, "Electronics", "gadgets")
	require.NoError(t, err)
	assert.Equal(t, "Electronics", category.Name)

	_, err = CreateCategory(db, "Electronics", "again")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	_, err = CreateCategory(db, "   ", "blank")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateProductValidations(t *testing.T) {
	db := newTestDB(t)
	category := createCategory(t, db, "Electronics")

	_, err := CreateProduct(db, ProductInput{ProductName: "Phone", Price: -1, CategoryID: category.ID})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = CreateProduct(db, ProductInput{ProductName: "Phone", StockQuantity: -1, CategoryID: category.ID})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = CreateProduct(db, ProductInput{ProductName: "Phone", Price: 10, CategoryID: 999})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	product, err := CreateProduct(db, ProductInput{
		ProductName:   "Phone",
		Price:         250,
		StockQuantity: 10,
		CategoryID:    category.ID,
	})
	require.NoError(t, err)
	assert.False(t, product.IsFeatured)

	_, err = CreateProduct(db, ProductInput{ProductName: "Phone", Price: 99, CategoryID: category.ID})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestUpdateProductPartial(t *testing.T) {
	db := newTestDB(t)
	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, "Phone", 250, 10, category.ID)

	newPrice := 199.0
	updated, err := UpdateProduct(db, phone.ID, ProductUpdate{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 199.0, updated.Price)
	assert.Equal(t, "Phone", updated.ProductName)
	assert.Equal(t, 10, updated.StockQuantity)

	// Renaming to an existing name is a conflict; keeping the same
	// name is not.
	createProduct(t, db, "Charger", 20, 5, category.ID)
	taken := "Charger"
	_, err = UpdateProduct(db, phone.ID, ProductUpdate{ProductName: &taken})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	same := "Phone"
	_, err = UpdateProduct(db, phone.ID, ProductUpdate{ProductName: &same})
	assert.NoError(t, err)

	_, err = UpdateProduct(db, 999, ProductUpdate{Price: &newPrice})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestSetFeaturedLeavesOtherFieldsAlone(t *testing.T) {
	db := newTestDB(t)
	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, "Phone", 250, 10, category.ID)

	featured, err := SetFeatured(db, phone.ID, true)
	require.NoError(t, err)
	assert.True(t, featured.IsFeatured)
	assert.Equal(t, 250.0, featured.Price)
	assert.Equal(t, 10, featured.StockQuantity)

	unfeatured, err := SetFeatured(db, phone.ID, false)
	require.NoError(t, err)
	assert.False(t, unfeatured.IsFeatured)
}

func TestSearchProductsComposesPredicates(t *testing.T) {
	db := newTestDB(t)
	electronics := createCategory(t, db, "Electronics")
	kitchen := createCategory(t, db, "Kitchen")
	createProduct(t, db, "Smart Phone", 250, 10, electronics.ID)
	createProduct(t, db, "Smart Kettle", 60, 10, kitchen.ID)
	createProduct(t, db, "Charger", 20, 10, electronics.ID)

	// Name substring alone.
	byName, err := SearchProducts(db, SearchFilter{Name: "Smart"})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	// Price range alone.
	minPrice, maxPrice := 50.0, 300.0
	byPrice, err := SearchProducts(db, SearchFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})
	require.NoError(t, err)
	assert.Len(t, byPrice, 2)

	// All predicates ANDed together.
	combined, err := SearchProducts(db, SearchFilter{Name: "Smart", MinPrice: &minPrice, Category: "Electronics"})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, "Smart Phone", combined[0].ProductName)

	// No predicates returns everything.
	all, err := SearchProducts(db, SearchFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListProductsByCategory(t *testing.T) {
	db := newTestDB(t)
	electronics := createCategory(t, db, "Electronics")
	kitchen := createCategory(t, db, "Kitchen")
	createProduct(t, db, "Phone", 250, 10, electronics.ID)
	createProduct(t, db, "Kettle", 60, 10, kitchen.ID)

	products, err := ListProductsByCategory(db, electronics.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Phone", products[0].ProductName)

	_, err = ListProductsByCategory(db, 999)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestListProductsPaginates(t *testing.T) {
	db := newTestDB(t)
	category := createCategory(t, db, "Electronics")
	createProduct(t, db, "Phone", 250, 10, category.ID)
	createProduct(t, db, "Charger", 20, 10, category.ID)
	createProduct(t, db, "Kettle", 60, 10, category.ID)

	page1, count, err := ListProducts(db, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Len(t, page1, 2)

	page2, _, err := ListProducts(db, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 1)
}
