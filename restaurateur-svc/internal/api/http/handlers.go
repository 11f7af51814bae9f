package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/devmanorg/star-burger/restaurateur-svc/internal/domain"
	"github.com/devmanorg/star-burger/restaurateur-svc/internal/service"
	"github.com/devmanorg/star-burger/server"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	Dashboard service.DashboardServiceInterface
}

func NewHandler(dashboard service.DashboardServiceInterface) *Handler {
	return &Handler{Dashboard: dashboard}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		server.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := r.PathPrefix("/api/restaurateur").Subrouter()
	api.HandleFunc("/orders", h.listOrders).Methods("GET")
	api.HandleFunc("/orders/{orderId}/candidates", h.orderCandidates).Methods("GET")
	api.HandleFunc("/orders/{orderId}/assign", h.assignRestaurant).Methods("POST")
	api.HandleFunc("/orders/{orderId}/status", h.changeStatus).Methods("POST")
	api.HandleFunc("/products", h.productAvailability).Methods("GET")
	api.HandleFunc("/restaurants", h.listRestaurants).Methods("GET")
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Dashboard.OpenOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) orderCandidates(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(mux.Vars(r)["orderId"])
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	ranked, err := h.Dashboard.OrderCandidates(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, ranked)
}

func (h *Handler) assignRestaurant(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(mux.Vars(r)["orderId"])
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	var payload struct {
		RestaurantID int `json:"restaurant_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.RestaurantID <= 0 {
		http.Error(w, "Missing restaurant_id", http.StatusBadRequest)
		return
	}

	if err := h.Dashboard.AssignRestaurant(r.Context(), orderID, payload.RestaurantID); err != nil {
		writeError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"order_id":      orderID,
		"restaurant_id": payload.RestaurantID,
		"status":        domain.StatusPreparing,
	})
}

func (h *Handler) changeStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(mux.Vars(r)["orderId"])
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if err := h.Dashboard.ChangeStatus(r.Context(), orderID, payload.Status); err != nil {
		writeError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"order_id": orderID,
		"status":   payload.Status,
	})
}

func (h *Handler) productAvailability(w http.ResponseWriter, r *http.Request) {
	matrix, err := h.Dashboard.ProductAvailability(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, matrix)
}

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Dashboard.Restaurants(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, restaurants)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrUnknownStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrRestaurantCannotServe), errors.Is(err, service.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrEmptyOrder), errors.Is(err, service.ErrUnknownProduct):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.WithError(err).Error("restaurateur request failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
