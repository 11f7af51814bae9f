package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devmanorg/star-burger/api-gateway/internal/gateway"
	"github.com/devmanorg/star-burger/api-gateway/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testConfig = gateway.Config{
	CatalogSvcURL:      "http://catalog-svc",
	RestaurateurSvcURL: "http://restaurateur-svc",
}

func okResponse(status int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.HealthCheck(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_RouteHandler(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		wantURL    string
		wantStatus int
	}{
		{
			name:       "restaurateur orders",
			method:     http.MethodGet,
			path:       "/api/restaurateur/orders",
			wantURL:    "http://restaurateur-svc/api/restaurateur/orders",
			wantStatus: http.StatusOK,
		},
		{
			name:       "restaurateur assign keeps query",
			method:     http.MethodPost,
			path:       "/api/restaurateur/orders/7/assign?dry=1",
			wantURL:    "http://restaurateur-svc/api/restaurateur/orders/7/assign?dry=1",
			wantStatus: http.StatusOK,
		},
		{
			name:       "register order",
			method:     http.MethodPost,
			path:       "/api/order",
			wantURL:    "http://catalog-svc/api/order",
			wantStatus: http.StatusCreated,
		},
		{
			name:       "register order with trailing slash",
			method:     http.MethodPost,
			path:       "/api/order/",
			wantURL:    "http://catalog-svc/api/order",
			wantStatus: http.StatusCreated,
		},
		{
			name:       "order qr code",
			method:     http.MethodGet,
			path:       "/api/orders/3/qrcode",
			wantURL:    "http://catalog-svc/api/orders/3/qrcode",
			wantStatus: http.StatusOK,
		},
		{
			name:       "banners",
			method:     http.MethodGet,
			path:       "/api/banners",
			wantURL:    "http://catalog-svc/api/banners",
			wantStatus: http.StatusOK,
		},
		{
			name:       "products",
			method:     http.MethodGet,
			path:       "/api/products",
			wantURL:    "http://catalog-svc/api/products",
			wantStatus: http.StatusOK,
		},
		{
			name:       "restaurant menu",
			method:     http.MethodPut,
			path:       "/api/restaurants/1/menu/10",
			wantURL:    "http://catalog-svc/api/restaurants/1/menu/10",
			wantStatus: http.StatusOK,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(testConfig, mockClient)

			mockClient.On("Do", mock.MatchedBy(func(r *http.Request) bool {
				return r.Method == testCase.method && r.URL.String() == testCase.wantURL
			})).Return(okResponse(testCase.wantStatus, `{"ok":true}`), nil).Once()

			req := httptest.NewRequest(testCase.method, testCase.path, strings.NewReader(`{}`))
			rr := httptest.NewRecorder()

			gw.RouteHandler(rr, req)

			assert.Equal(t, testCase.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), "ok")
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		})
	}
}

func TestGateway_RouteHandler_ForwardsHeaders(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient)

	mockClient.On("Do", mock.MatchedBy(func(r *http.Request) bool {
		return r.Header.Get("Content-Type") == "application/json"
	})).Return(okResponse(http.StatusOK, `[]`), nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"name":"Чизбургер"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGateway_RouteHandler_UnknownAPI(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurateur/orders", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestGateway_SetupRoutes_Health(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
