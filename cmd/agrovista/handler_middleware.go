package main

import (
	"context"
	"log"
	"net/http"
	"strings"
)

// allowedOrigins resolves the CORS origin whitelist once at router setup
func allowedOrigins() []string {
	env := getEnv("SERVER_ALLOWED_ORIGINS", "")
	if env == "" {
		// Default fallback if not configured
		return []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}
	}

	origins := strings.Split(env, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	return origins
}

// corsMiddleware handles CORS headers
func (rm *RouteManager) corsMiddleware(next http.Handler) http.Handler {
	origins := allowedOrigins()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			allowed := false
			for _, o := range origins {
				if origin == o {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					allowed = true
					break
				}
			}
			if !allowed {
				log.Printf("Origin '%s' is not within allowed origins: %s", origin, strings.Join(origins, ", "))
			}
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "3600")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// contextMiddleware adds database context to requests
func (rm *RouteManager) contextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rm.dbManager == nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), "db", rm.dbManager.GetDB())
		ctx = context.WithValue(ctx, "dbManager", rm.dbManager)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
