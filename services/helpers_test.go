package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sokoni/sokoni-api/config"
	"github.com/sokoni/sokoni-api/models"
	"github.com/sokoni/sokoni-api/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every statement on the same in-memory
	// database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "test-secret",
		AuthTokenTTL:         time.Hour,
		VerificationTokenTTL: time.Hour,
		BaseURL:              "http://localhost:8080",
		FrontendURL:          "http://localhost:4200",
	}
}

type sentEmail struct {
	To       string
	Subject  string
	Template string
	Data     utils.EmailData
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentEmail
	fail bool
}

func (m *fakeMailer) Send(to, subject, templateName string, data utils.EmailData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentEmail{To: to, Subject: subject, Template: templateName, Data: data})
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *fakeMailer) lastSent() sentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

func createUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()

	hashed, err := utils.HashPassword("Password1")
	require.NoError(t, err)

	user := models.User{Name: name, Email: email, Password: hashed, Role: role}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := models.Category{Name: name, Description: name + " products"}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int, categoryID uint) *models.Product {
	t.Helper()

	product := models.Product{
		ProductName:   name,
		Price:         price,
		StockQuantity: stock,
		CategoryID:    categoryID,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

// createCompletedOrder records a completed order for buyerID holding a
// single line of the given product.
func createCompletedOrder(t *testing.T, db *gorm.DB, buyerID, productID uint, quantity int, unitPrice float64) *models.Order {
	t.Helper()

	order := models.Order{
		Reference:   "ORD-test",
		BuyerID:     buyerID,
		Status:      models.OrderStatusCompleted,
		TotalAmount: float64(quantity) * unitPrice,
	}
	require.NoError(t, db.Create(&order).Error)

	item := models.OrderItem{
		OrderID:   order.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	require.NoError(t, db.Create(&item).Error)
	return &order
}
