package batch

import (
	"log/slog"
	"net/http"

	"github.com/chrisdevelops/receipt-to-spendee-to-csv/internal/extraction"
)

// Server handles HTTP requests for extraction and the receipt batch
type Server struct {
	service   *Service
	extractor extraction.Extractor
	mux       *http.ServeMux
}

// NewServer creates a new Server with default mux
func NewServer(service *Service, extractor extraction.Extractor) *Server {
	return NewServerWithMux(service, extractor, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(service *Service, extractor extraction.Extractor, mux *http.ServeMux) *Server {
	s := &Server{
		service:   service,
		extractor: extractor,
		mux:       mux,
	}
	s.registerRoutes()
	return s
}

// corsMiddleware adds CORS headers to responses
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)

		// Handle preflight OPTIONS requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// registerRoutes registers all API routes on the server's mux
// Routes must be registered from most specific to least specific to avoid conflicts
func (s *Server) registerRoutes() {
	// Static files
	s.mux.HandleFunc("GET /static/app.css", s.handleStaticCSS)
	s.mux.HandleFunc("GET /static/app.js", s.handleStaticJS)

	// Extraction
	s.mux.HandleFunc("POST /api/extract-receipt", s.handleExtractReceipt)

	// Batch
	s.mux.HandleFunc("DELETE /api/receipts/{id}", s.handleRemoveReceipt)
	s.mux.HandleFunc("GET /api/receipts", s.handleListReceipts)
	s.mux.HandleFunc("POST /api/receipts", s.handleAcceptReceipt)
	s.mux.HandleFunc("GET /api/export/{type}", s.handleExportCSV)

	// Static HTML interface (register last as it's the catch-all)
	s.mux.HandleFunc("GET /index.html", s.handleIndex)
	s.mux.HandleFunc("GET /", s.handleIndex)
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	slog.Info("Starting server", "address", addr)
	return http.ListenAndServe(addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.corsMiddleware(func(w http.ResponseWriter, r *http.Request) {
			s.mux.ServeHTTP(w, r)
		})(w, r)
	}))
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
