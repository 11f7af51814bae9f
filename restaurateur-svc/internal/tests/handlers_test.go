package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "github.com/devmanorg/star-burger/restaurateur-svc/internal/api/http"
	"github.com/devmanorg/star-burger/restaurateur-svc/internal/domain"
	"github.com/devmanorg/star-burger/restaurateur-svc/internal/mocks"
	"github.com/devmanorg/star-burger/restaurateur-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(mockSvc *mocks.DashboardServiceInterface) *mux.Router {
	handler := &httpapi.Handler{Dashboard: mockSvc}
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestHandler_listOrders(t *testing.T) {
	mockSvc := mocks.NewDashboardServiceInterface(t)
	router := setupTestRouter(mockSvc)

	distance := 1.46
	mockSvc.On("OpenOrders", mock.Anything).Return([]domain.RankedOrder{
		{
			Order:      orderWith(1, redSquare, burgerID),
			Candidates: []domain.Candidate{{Restaurant: tverskayaRestaurant, DistanceKm: &distance}, {Restaurant: arbatRestaurant}},
		},
		{
			Order:             orderWith(2, "нигде", burgerID),
			Candidates:        []domain.Candidate{{Restaurant: arbatRestaurant}},
			AddressUnresolved: true,
		},
	}, nil).Once()

	req := httptest.NewRequest("GET", "/api/restaurateur/orders", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var body []struct {
		Order struct {
			ID int `json:"id"`
		} `json:"order"`
		Candidates []struct {
			Restaurant struct {
				ID int `json:"id"`
			} `json:"restaurant"`
			DistanceKm *float64 `json:"distance_km"`
		} `json:"candidates"`
		AddressUnresolved bool `json:"address_unresolved"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body, 2)

	assert.Equal(t, 2, body[0].Candidates[0].Restaurant.ID)
	assert.InDelta(t, 1.46, *body[0].Candidates[0].DistanceKm, 1e-9)
	assert.Nil(t, body[0].Candidates[1].DistanceKm)
	assert.True(t, body[1].AddressUnresolved)
}

func TestHandler_listOrders_Error(t *testing.T) {
	mockSvc := mocks.NewDashboardServiceInterface(t)
	router := setupTestRouter(mockSvc)

	mockSvc.On("OpenOrders", mock.Anything).Return(nil, errors.New("geocode store down")).Once()

	req := httptest.NewRequest("GET", "/api/restaurateur/orders", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "geocode store down")
}

func TestHandler_orderCandidates(t *testing.T) {
	mockSvc := mocks.NewDashboardServiceInterface(t)
	router := setupTestRouter(mockSvc)

	tests := []struct {
		name         string
		path         string
		prepareMocks func()
		expectedCode int
	}{
		{
			name: "success",
			path: "/api/restaurateur/orders/7/candidates",
			prepareMocks: func() {
				mockSvc.On("OrderCandidates", mock.Anything, 7).
					Return(domain.RankedOrder{Order: orderWith(7, redSquare, burgerID), Candidates: []domain.Candidate{}}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "not_found",
			path: "/api/restaurateur/orders/8/candidates",
			prepareMocks: func() {
				mockSvc.On("OrderCandidates", mock.Anything, 8).Return(domain.RankedOrder{}, domain.ErrOrderNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "invalid_order",
			path: "/api/restaurateur/orders/9/candidates",
			prepareMocks: func() {
				mockSvc.On("OrderCandidates", mock.Anything, 9).Return(domain.RankedOrder{}, service.ErrEmptyOrder).Once()
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "bad_id",
			path:         "/api/restaurateur/orders/abc/candidates",
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			req := httptest.NewRequest("GET", testCase.path, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_assignRestaurant(t *testing.T) {
	mockSvc := mocks.NewDashboardServiceInterface(t)
	router := setupTestRouter(mockSvc)

	tests := []struct {
		name         string
		payload      string
		prepareMocks func()
		expectedCode int
		expectedBody string
	}{
		{
			name:    "success",
			payload: `{"restaurant_id":3}`,
			prepareMocks: func() {
				mockSvc.On("AssignRestaurant", mock.Anything, 11, 3).Return(nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"status":"preparing"`,
		},
		{
			name:    "restaurant_cannot_serve",
			payload: `{"restaurant_id":2}`,
			prepareMocks: func() {
				mockSvc.On("AssignRestaurant", mock.Anything, 11, 2).Return(service.ErrRestaurantCannotServe).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:    "already_assigned",
			payload: `{"restaurant_id":1}`,
			prepareMocks: func() {
				mockSvc.On("AssignRestaurant", mock.Anything, 11, 1).Return(service.ErrInvalidTransition).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "missing_restaurant",
			payload:      `{}`,
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid_json",
			payload:      `bad json`,
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			req := httptest.NewRequest("POST", "/api/restaurateur/orders/11/assign", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_changeStatus(t *testing.T) {
	mockSvc := mocks.NewDashboardServiceInterface(t)
	router := setupTestRouter(mockSvc)

	tests := []struct {
		name         string
		payload      string
		prepareMocks func()
		expectedCode int
	}{
		{
			name:    "success",
			payload: `{"status":"delivering"}`,
			prepareMocks: func() {
				mockSvc.On("ChangeStatus", mock.Anything, 5, domain.StatusDelivering).Return(nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:    "wrong_source_status",
			payload: `{"status":"completed"}`,
			prepareMocks: func() {
				mockSvc.On("ChangeStatus", mock.Anything, 5, domain.StatusCompleted).Return(service.ErrInvalidTransition).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:    "unknown_status",
			payload: `{"status":"lost"}`,
			prepareMocks: func() {
				mockSvc.On("ChangeStatus", mock.Anything, 5, domain.OrderStatus("lost")).
					Return(errors.Wrap(service.ErrUnknownStatus, "lost")).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			req := httptest.NewRequest("POST", "/api/restaurateur/orders/5/status", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_productAvailability(t *testing.T) {
	mockSvc := mocks.NewDashboardServiceInterface(t)
	router := setupTestRouter(mockSvc)

	mockSvc.On("ProductAvailability", mock.Anything).Return(domain.AvailabilityMatrix{
		Restaurants: []domain.Restaurant{arbatRestaurant, sokolRestaurant},
		Products: []domain.ProductAvailability{
			{Product: testMenu().Products[1], Availability: []bool{true, false}},
		},
	}, nil).Once()

	req := httptest.NewRequest("GET", "/api/restaurateur/products", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"availability":[true,false]`)
	assert.Contains(t, recorder.Body.String(), `"price":"120"`)
}

func TestHandler_listRestaurants(t *testing.T) {
	mockSvc := mocks.NewDashboardServiceInterface(t)
	router := setupTestRouter(mockSvc)

	mockSvc.On("Restaurants", mock.Anything).Return([]domain.Restaurant{arbatRestaurant}, nil).Once()

	req := httptest.NewRequest("GET", "/api/restaurateur/restaurants", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"name":"Star Burger Арбат"`)
}

func TestHandler_health(t *testing.T) {
	router := setupTestRouter(mocks.NewDashboardServiceInterface(t))

	req := httptest.NewRequest("GET", "/health", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}
