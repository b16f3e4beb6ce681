package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/models"
	"github.com/stretchr/testify/assert"
)

func TestAddToCart(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)

	customer := createUserWithRoles(t, db, "auth0|customer123", "customer")
	mains := createCategory(t, db, "mains", "Mains")
	item := createMenuItem(t, db, "Pasta Carbonara", "14.50", mains.ID)

	tests := []struct {
		name           string
		auth0ID        string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name:    "Successfully add item with explicit quantity",
			auth0ID: customer.Auth0ID,
			requestBody: map[string]interface{}{
				"menuitem_id": item.ID,
				"quantity":    2,
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, float64(2), data["quantity"])
				assert.Equal(t, "14.5", data["unit_price"])
				assert.Equal(t, "29", data["price"])
			},
		},
		{
			name:    "Quantity defaults to one",
			auth0ID: customer.Auth0ID,
			requestBody: map[string]interface{}{
				"menuitem_id": item.ID,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:    "Fail with missing menuitem_id",
			auth0ID: customer.Auth0ID,
			requestBody: map[string]interface{}{
				"quantity": 2,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:    "Fail with unknown menu item",
			auth0ID: customer.Auth0ID,
			requestBody: map[string]interface{}{
				"menuitem_id": 9999,
				"quantity":    1,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:    "Fail with zero quantity",
			auth0ID: customer.Auth0ID,
			requestBody: map[string]interface{}{
				"menuitem_id": item.ID,
				"quantity":    0,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:    "Fail with unknown user",
			auth0ID: "auth0|nonexistent",
			requestBody: map[string]interface{}{
				"menuitem_id": item.ID,
				"quantity":    1,
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "USER_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db.Exec("DELETE FROM carts")

			router := setupTestRouter()
			router.POST("/cart/menu-items", mockAuthMiddleware(tt.auth0ID), AddToCart)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/cart/menu-items", bytes.NewBuffer(body))
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
				assert.True(t, response["success"].(bool))
			}

			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestAddToCart_IncrementsExistingLine(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)

	customer := createUserWithRoles(t, db, "auth0|customer123", "customer")
	mains := createCategory(t, db, "mains", "Mains")
	item := createMenuItem(t, db, "Pasta Carbonara", "10.00", mains.ID)

	router := setupTestRouter()
	router.POST("/cart/menu-items", mockAuthMiddleware(customer.Auth0ID), AddToCart)

	addOnce := func(quantity int) map[string]interface{} {
		body, _ := json.Marshal(map[string]interface{}{
			"menuitem_id": item.ID,
			"quantity":    quantity,
		})
		req, _ := http.NewRequest(http.MethodPost, "/cart/menu-items", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		return response["data"].(map[string]interface{})
	}

	addOnce(2)
	data := addOnce(3)

	assert.Equal(t, float64(5), data["quantity"])
	assert.Equal(t, "50", data["price"])

	// A single line, not two
	var count int64
	db.Model(&models.Cart{}).Where("user_id = ?", customer.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetCart(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)

	customer := createUserWithRoles(t, db, "auth0|customer123", "customer")
	other := createUserWithRoles(t, db, "auth0|other456", "other")
	mains := createCategory(t, db, "mains", "Mains")
	pasta := createMenuItem(t, db, "Pasta Carbonara", "14.50", mains.ID)
	salmon := createMenuItem(t, db, "Grilled Salmon", "21.00", mains.ID)

	seedCartLine(t, db, customer.ID, pasta, 2)
	seedCartLine(t, db, other.ID, salmon, 1)

	router := setupTestRouter()
	router.GET("/cart/menu-items", mockAuthMiddleware(customer.Auth0ID), GetCart)

	req, _ := http.NewRequest(http.MethodGet, "/cart/menu-items", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response["success"].(bool))

	lines := response["data"].([]interface{})
	assert.Equal(t, 1, len(lines), "Only the caller's lines are returned")

	line := lines[0].(map[string]interface{})
	assert.Equal(t, float64(2), line["quantity"])
	menuItem := line["menuitem"].(map[string]interface{})
	assert.Equal(t, "Pasta Carbonara", menuItem["title"])
}

func TestClearCart(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)

	customer := createUserWithRoles(t, db, "auth0|customer123", "customer")
	mains := createCategory(t, db, "mains", "Mains")
	pasta := createMenuItem(t, db, "Pasta Carbonara", "14.50", mains.ID)
	seedCartLine(t, db, customer.ID, pasta, 2)

	router := setupTestRouter()
	router.DELETE("/cart/menu-items", mockAuthMiddleware(customer.Auth0ID), ClearCart)

	req, _ := http.NewRequest(http.MethodDelete, "/cart/menu-items", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	db.Model(&models.Cart{}).Where("user_id = ?", customer.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// Clearing an already-empty cart also succeeds
	req, _ = http.NewRequest(http.MethodDelete, "/cart/menu-items", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
