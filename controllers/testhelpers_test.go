package controllers

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/little-lemon/little-lemon-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupControllerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// :memory: gives every pool connection its own database, so the pool
	// must stay at a single connection for transactions to see the schema.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.Category{},
		&models.MenuItem{},
		&models.Cart{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// mockAuthMiddleware simulates the JWT middleware by setting the caller's
// Auth0 ID on the context. Role checks read from the database, so tests grant
// roles by creating user_roles rows.
func mockAuthMiddleware(auth0ID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", auth0ID)
		c.Next()
	}
}

func createUserWithRoles(t *testing.T, db *gorm.DB, auth0ID, username string, roles ...string) *models.User {
	t.Helper()
	user := models.User{
		Auth0ID:  auth0ID,
		Username: username,
		Name:     username,
		Email:    username + "@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	for _, role := range roles {
		if err := db.Create(&models.UserRole{UserID: user.ID, RoleName: role}).Error; err != nil {
			t.Fatalf("Failed to grant role %s: %v", role, err)
		}
	}
	return &user
}

func seedCartLine(t *testing.T, db *gorm.DB, userID uint, item *models.MenuItem, quantity int) *models.Cart {
	t.Helper()
	line := models.Cart{
		UserID:     userID,
		MenuItemID: item.ID,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		Price:      item.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("Failed to create cart line: %v", err)
	}
	return &line
}

func seedOrder(t *testing.T, db *gorm.DB, userID uint, crewID *uint, status, total string) *models.Order {
	t.Helper()
	order := models.Order{
		UserID:         userID,
		DeliveryCrewID: crewID,
		Status:         status,
		Date:           time.Now().UTC(),
		Total:          decimal.RequireFromString(total),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}
	return &order
}

func decimalFromString(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("Invalid decimal %q: %v", value, err)
	}
	return d
}

func createCategory(t *testing.T, db *gorm.DB, slug, title string) *models.Category {
	t.Helper()
	category := models.Category{Slug: slug, Title: title}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return &category
}

func createMenuItem(t *testing.T, db *gorm.DB, title, price string, categoryID uint) *models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Title:      title,
		Price:      decimal.RequireFromString(price),
		CategoryID: categoryID,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("Failed to create test menu item: %v", err)
	}
	return &item
}
