package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/devmanorg/star-burger/catalog-svc/internal/domain"
	"github.com/devmanorg/star-burger/catalog-svc/internal/service"
	"github.com/devmanorg/star-burger/server"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	Restaurants service.RestaurantServiceInterface
	Products    service.ProductServiceInterface
	Orders      service.OrderServiceInterface
}

func NewHandler(restSvc service.RestaurantServiceInterface, productSvc service.ProductServiceInterface, orderSvc service.OrderServiceInterface) *Handler {
	return &Handler{
		Restaurants: restSvc,
		Products:    productSvc,
		Orders:      orderSvc,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.updateRestaurant).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}", h.deleteRestaurant).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{id}/menu/{productId}", h.setAvailability).Methods("PUT")

	r.HandleFunc("/api/banners", h.getBanners).Methods("GET")

	r.HandleFunc("/api/products", h.getProducts).Methods("GET")
	r.HandleFunc("/api/products", h.createProduct).Methods("POST")
	r.HandleFunc("/api/products/{id}", h.updateProduct).Methods("PUT")
	r.HandleFunc("/api/products/{id}", h.deleteProduct).Methods("DELETE")

	r.HandleFunc("/api/order", h.registerOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	server.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "catalog-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getBanners(w http.ResponseWriter, r *http.Request) {
	server.WriteJSON(w, http.StatusOK, service.Banners())
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var rest domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&rest); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Restaurants.Create(r.Context(), &rest); err != nil {
		writeError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusCreated, rest)
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Restaurants.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rest, err := h.Restaurants.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, rest)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var rest domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&rest); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rest.ID = id
	if err := h.Restaurants.Update(r.Context(), &rest); err != nil {
		writeError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, rest)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Restaurants.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setAvailability(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	productID, ok := pathID(w, r, "productId")
	if !ok {
		return
	}

	var payload struct {
		Availability *bool `json:"availability"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Availability == nil {
		http.Error(w, "Missing availability", http.StatusBadRequest)
		return
	}

	entry := domain.MenuEntry{RestaurantID: restaurantID, ProductID: productID, Availability: *payload.Availability}
	if err := h.Products.SetAvailability(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) getProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.ListAvailable(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Products.Create(r.Context(), &product); err != nil {
		writeError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusCreated, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	product.ID = id
	if err := h.Products.Update(r.Context(), &product); err != nil {
		writeError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, product)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Products.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) registerOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	order, err := h.Orders.Get(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	qrCode, err := h.Orders.GetQRCode(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(qrCode) == 0 {
		http.Error(w, "QR code not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(qrCode); err != nil {
		log.WithError(err).Error("write qr code")
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		http.Error(w, "Invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	var invalid domain.ValidationError
	switch {
	case errors.As(err, &invalid):
		server.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": invalid})
	case errors.Is(err, domain.ErrUnknownProduct):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	default:
		log.WithError(err).Error("catalog request failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
