// Package testutil holds shared helpers for the integration and acceptance
// suites: environment guards and database seeding for the restaurant domain.
package testutil

import (
	"os"
	"testing"
	"time"

	"github.com/little-lemon/little-lemon-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// RequireTestEnvironment fails the test unless GO_ENV is "test". This keeps
// the suites from ever touching a development or production database.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()
	if env := os.Getenv("GO_ENV"); env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: tests must run with GO_ENV=test (current: %q)", env)
	}
}

// NewTestDB opens an in-memory SQLite database with the full schema migrated.
// The connection pool is capped at one connection because :memory: gives each
// connection its own database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

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

// CreateUser inserts a user and grants the given roles
func CreateUser(t *testing.T, db *gorm.DB, auth0ID, username string, roles ...string) *models.User {
	t.Helper()

	user := models.User{
		Auth0ID:  auth0ID,
		Username: username,
		Name:     username,
		Email:    username + "@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	for _, role := range roles {
		if err := db.Create(&models.UserRole{UserID: user.ID, RoleName: role}).Error; err != nil {
			t.Fatalf("Failed to grant role %s to %s: %v", role, username, err)
		}
	}
	return &user
}

// SeedMenu creates a small catalog: two categories with two items each.
// Returned items are ordered Mains (Pasta 14.50, Salmon 21.00) then Desserts
// (Tiramisu 7.50, Lemon Dessert 8.50).
func SeedMenu(t *testing.T, db *gorm.DB) []models.MenuItem {
	t.Helper()

	mains := models.Category{Slug: "mains", Title: "Mains"}
	desserts := models.Category{Slug: "desserts", Title: "Desserts"}
	for _, category := range []*models.Category{&mains, &desserts} {
		if err := db.Create(category).Error; err != nil {
			t.Fatalf("Failed to seed category %s: %v", category.Slug, err)
		}
	}

	items := []models.MenuItem{
		{Title: "Pasta Carbonara", Price: decimal.RequireFromString("14.50"), CategoryID: mains.ID},
		{Title: "Grilled Salmon", Price: decimal.RequireFromString("21.00"), CategoryID: mains.ID},
		{Title: "Tiramisu", Price: decimal.RequireFromString("7.50"), CategoryID: desserts.ID},
		{Title: "Lemon Dessert", Price: decimal.RequireFromString("8.50"), Featured: true, CategoryID: desserts.ID},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("Failed to seed menu item %s: %v", items[i].Title, err)
		}
	}
	return items
}

// SeedCartLine inserts a cart line priced from the menu item
func SeedCartLine(t *testing.T, db *gorm.DB, userID uint, item *models.MenuItem, quantity int) *models.Cart {
	t.Helper()

	line := models.Cart{
		UserID:     userID,
		MenuItemID: item.ID,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		Price:      item.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("Failed to seed cart line: %v", err)
	}
	return &line
}

// SeedOrder inserts an order without items, for listing and lifecycle tests
func SeedOrder(t *testing.T, db *gorm.DB, userID uint, crewID *uint, status, total string) *models.Order {
	t.Helper()

	order := models.Order{
		UserID:         userID,
		DeliveryCrewID: crewID,
		Status:         status,
		Date:           time.Now().UTC(),
		Total:          decimal.RequireFromString(total),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	return &order
}
