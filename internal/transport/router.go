package transport

import (
	"net/http"

	"github.com/rs/cors"
)

// NewRouter wires the payment endpoint and the metrics handler behind CORS.
func NewRouter(payment *PaymentHandler, metrics http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(CheckBTCPath, payment)
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)
}
