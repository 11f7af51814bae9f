package gateway

import (
	"io"
	"net/http"
	"strings"

	"github.com/devmanorg/star-burger/server"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	CatalogSvcURL      string `envconfig:"CATALOG_SVC_URL" default:"http://localhost:8081"`
	RestaurateurSvcURL string `envconfig:"RESTAURATEUR_SVC_URL" default:"http://localhost:8082"`
	FrontendDir        string `envconfig:"FRONTEND_DIR" default:"./frontend"`
}

type Gateway struct {
	config Config
	client HTTPClient
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	return &Gateway{
		config: config,
		client: client,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	server.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	})
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	logger := log.WithFields(log.Fields{"method": r.Method, "path": r.URL.Path, "target": targetURL})
	logger.Debug("proxying request")

	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		logger.WithError(err).Error("Failed to create request")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}

	resp, err := g.client.Do(req)
	if err != nil {
		logger.WithError(err).Error("Failed to proxy request")
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		logger.WithError(err).Error("Failed to copy response")
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	// The storefront posts to /api/order/ with a trailing slash.
	if path == "/api/order/" {
		r.URL.Path = "/api/order"
		path = r.URL.Path
	}

	switch {
	case path == "/api/restaurateur" || strings.HasPrefix(path, "/api/restaurateur/"):
		g.ProxyRequest(w, r, g.config.RestaurateurSvcURL)
	case path == "/api/order",
		path == "/api/banners",
		strings.HasPrefix(path, "/api/orders/"),
		path == "/api/products" || strings.HasPrefix(path, "/api/products/"),
		path == "/api/restaurants" || strings.HasPrefix(path, "/api/restaurants/"):
		g.ProxyRequest(w, r, g.config.CatalogSvcURL)
	case strings.HasPrefix(path, "/api/"):
		log.WithField("path", path).Warn("Unmatched API route")
		http.Error(w, "API route not found", http.StatusNotFound)
	default:
		http.ServeFile(w, r, g.config.FrontendDir+"/index.html")
	}
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(g.config.FrontendDir))))
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return server.LogMiddleware(r)
}
