package middleware

import "net/http"

type CORSMiddleware struct {
	allowedOrigins map[string]bool
	allowAny       bool
}

// NewCORSMiddleware builds the middleware from the configured origin
// list; a single "*" entry permits any origin.
func NewCORSMiddleware(allowedOrigins []string) *CORSMiddleware {
	m := &CORSMiddleware{
		allowedOrigins: make(map[string]bool, len(allowedOrigins)),
	}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			m.allowAny = true
			continue
		}
		m.allowedOrigins[origin] = true
	}
	return m
}

func (m *CORSMiddleware) allowOrigin(origin string) string {
	if m.allowAny {
		return "*"
	}
	if m.allowedOrigins[origin] {
		return origin
	}
	return ""
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if allowed := m.allowOrigin(req.Header.Get("Origin")); allowed != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			if !m.allowAny {
				// The response differs per Origin, so caches must key on it.
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	})
}
