package httpapi

import (
	"net/http"

	"github.com/devmanorg/star-burger/server"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return server.LogMiddleware(cors.Default().Handler(r))
}
