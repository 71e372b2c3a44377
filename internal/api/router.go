package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"github.com/wonny/readytrade/internal/api/handlers"
	"github.com/wonny/readytrade/pkg/logger"
)

// Handlers groups the endpoint handlers mounted by NewRouter
type Handlers struct {
	Health  *handlers.HealthHandler
	Players *handlers.PlayerHandler
	Trade   *handlers.TradeHandler
	ADP     *handlers.ADPHandler
	History *handlers.HistoryHandler
	Session *handlers.SessionHandler
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: routes are only registered here
func NewRouter(h Handlers, allowedOrigins []string, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", h.Health.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Players
	api.HandleFunc("/players", h.Players.GetPlayers).Methods("GET")
	api.HandleFunc("/players/search", h.Players.SearchPlayers).Methods("GET")
	api.HandleFunc("/catalog/stats", h.Players.GetStats).Methods("GET")

	// Trades
	api.HandleFunc("/trade/evaluate", h.Trade.Evaluate).Methods("POST")
	api.HandleFunc("/evaluations", h.History.ListEvaluations).Methods("GET")

	// ADP
	api.HandleFunc("/adp/{type}", h.ADP.GetADP).Methods("GET")

	// Live session
	r.HandleFunc("/ws/session", h.Session.Serve).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})(r)
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
