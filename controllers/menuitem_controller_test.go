package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/models"
	"github.com/stretchr/testify/assert"
)

func TestListMenuItems_Filtering(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)

	mains := createCategory(t, db, "mains", "Mains")
	desserts := createCategory(t, db, "desserts", "Desserts")

	pasta := createMenuItem(t, db, "Pasta Carbonara", "14.50", mains.ID)
	createMenuItem(t, db, "Grilled Salmon", "21.00", mains.ID)
	tiramisu := createMenuItem(t, db, "Tiramisu", "7.50", desserts.ID)
	db.Model(tiramisu).Update("featured", true)
	_ = pasta

	router := setupTestRouter()
	router.GET("/menu-items", ListMenuItems)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedTitles []string
	}{
		{
			name:           "List all items",
			query:          "",
			expectedStatus: http.StatusOK,
			expectedTitles: []string{"Pasta Carbonara", "Grilled Salmon", "Tiramisu"},
		},
		{
			name:           "Filter by category",
			query:          "?category=Desserts",
			expectedStatus: http.StatusOK,
			expectedTitles: []string{"Tiramisu"},
		},
		{
			name:           "Filter by featured",
			query:          "?featured=true",
			expectedStatus: http.StatusOK,
			expectedTitles: []string{"Tiramisu"},
		},
		{
			name:           "Filter by price range",
			query:          "?price_min=10&price_max=15",
			expectedStatus: http.StatusOK,
			expectedTitles: []string{"Pasta Carbonara"},
		},
		{
			name:           "Search by title",
			query:          "?search=Salmon",
			expectedStatus: http.StatusOK,
			expectedTitles: []string{"Grilled Salmon"},
		},
		{
			name:           "Order by price descending",
			query:          "?ordering=-price",
			expectedStatus: http.StatusOK,
			expectedTitles: []string{"Grilled Salmon", "Pasta Carbonara", "Tiramisu"},
		},
		{
			name:           "Invalid price_min",
			query:          "?price_min=abc",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/menu-items"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.True(t, response["success"].(bool))

			items := response["data"].([]interface{})
			titles := make([]string, 0, len(items))
			for _, raw := range items {
				titles = append(titles, raw.(map[string]interface{})["title"].(string))
			}
			assert.Equal(t, tt.expectedTitles, titles)
		})
	}
}

func TestListMenuItems_Pagination(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)

	mains := createCategory(t, db, "mains", "Mains")
	for i := 1; i <= 5; i++ {
		createMenuItem(t, db, fmt.Sprintf("Item %d", i), "9.99", mains.ID)
	}

	router := setupTestRouter()
	router.GET("/menu-items", ListMenuItems)

	req, _ := http.NewRequest(http.MethodGet, "/menu-items?page=2&page_size=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	items := response["data"].([]interface{})
	assert.Equal(t, 2, len(items))
	assert.Equal(t, "Item 3", items[0].(map[string]interface{})["title"])
	assert.Equal(t, float64(2), response["page"])
}

func TestGetMenuItem(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)

	mains := createCategory(t, db, "mains", "Mains")
	item := createMenuItem(t, db, "Pasta Carbonara", "14.50", mains.ID)

	router := setupTestRouter()
	router.GET("/menu-items/:id", GetMenuItem)

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/menu-items/%d", item.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Pasta Carbonara", data["title"])
	assert.Equal(t, "14.5", data["price"])

	category := data["category"].(map[string]interface{})
	assert.Equal(t, "Mains", category["title"])

	// Unknown item
	req, _ = http.NewRequest(http.MethodGet, "/menu-items/9999", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateMenuItem(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)

	mains := createCategory(t, db, "mains", "Mains")

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Successfully create menu item",
			requestBody: map[string]interface{}{
				"title":       "Lemon Dessert",
				"price":       "8.50",
				"featured":    true,
				"category_id": mains.ID,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Fail with missing title",
			requestBody: map[string]interface{}{
				"price":       "8.50",
				"category_id": mains.ID,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with zero price",
			requestBody: map[string]interface{}{
				"title":       "Free Item",
				"price":       "0",
				"category_id": mains.ID,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with negative price",
			requestBody: map[string]interface{}{
				"title":       "Negative Item",
				"price":       "-1.00",
				"category_id": mains.ID,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with unknown category",
			requestBody: map[string]interface{}{
				"title":       "Orphan Item",
				"price":       "8.50",
				"category_id": 9999,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/menu-items", CreateMenuItem)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/menu-items", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
			} else {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "Lemon Dessert", data["title"])
				assert.Equal(t, true, data["featured"])
			}
		})
	}
}

func TestUpdateMenuItem(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)

	mains := createCategory(t, db, "mains", "Mains")
	desserts := createCategory(t, db, "desserts", "Desserts")
	item := createMenuItem(t, db, "Pasta Carbonara", "14.50", mains.ID)

	router := setupTestRouter()
	router.PUT("/menu-items/:id", UpdateMenuItem)

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "Tiramisu",
		"price":       "7.50",
		"featured":    true,
		"category_id": desserts.ID,
	})
	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/menu-items/%d", item.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.MenuItem
	assert.NoError(t, db.First(&updated, item.ID).Error)
	assert.Equal(t, "Tiramisu", updated.Title)
	assert.True(t, updated.Featured)
	assert.Equal(t, desserts.ID, updated.CategoryID)
	assert.True(t, updated.Price.Equal(decimalFromString(t, "7.50")))
}

func TestPatchMenuItem(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)

	mains := createCategory(t, db, "mains", "Mains")
	item := createMenuItem(t, db, "Pasta Carbonara", "14.50", mains.ID)

	router := setupTestRouter()
	router.PATCH("/menu-items/:id", PatchMenuItem)

	body, _ := json.Marshal(map[string]interface{}{
		"featured": true,
	})
	req, _ := http.NewRequest(http.MethodPatch, fmt.Sprintf("/menu-items/%d", item.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.MenuItem
	assert.NoError(t, db.First(&updated, item.ID).Error)
	assert.True(t, updated.Featured)
	// Untouched fields keep their values
	assert.Equal(t, "Pasta Carbonara", updated.Title)
	assert.True(t, updated.Price.Equal(decimalFromString(t, "14.50")))
}

func TestDeleteMenuItem(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)

	mains := createCategory(t, db, "mains", "Mains")
	item := createMenuItem(t, db, "Pasta Carbonara", "14.50", mains.ID)

	router := setupTestRouter()
	router.DELETE("/menu-items/:id", DeleteMenuItem)

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("/menu-items/%d", item.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.MenuItem{}).Where("id = ?", item.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// Deleting again returns 404
	req, _ = http.NewRequest(http.MethodDelete, fmt.Sprintf("/menu-items/%d", item.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
