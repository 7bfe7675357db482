package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	actionservice "smartspace/contexts/engagement/action-service"
	userservice "smartspace/contexts/identity-access/user-service"
	elementservice "smartspace/contexts/spatial-catalog/element-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "smartspace/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	users    userservice.Module
	elements elementservice.Module
	actions  actionservice.Module
}

func New(
	users userservice.Module,
	elements elementservice.Module,
	actions actionservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		users:    users,
		elements: elements,
		actions:  actions,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /smartspace/admin/users/{adminSmartspace}/{adminEmail}", s.handleImportUsers)
	s.mux.HandleFunc("GET /smartspace/admin/users/{adminSmartspace}/{adminEmail}", s.handleListUsers)
	s.mux.HandleFunc("GET /smartspace/users/login/{userSmartspace}/{userEmail}", s.handleLogin)
	s.mux.HandleFunc("PUT /smartspace/users/{userSmartspace}/{userEmail}", s.handleUpdateUser)

	s.mux.HandleFunc("POST /smartspace/admin/elements/{adminSmartspace}/{adminEmail}", s.handleImportElements)
	s.mux.HandleFunc("GET /smartspace/admin/elements/{adminSmartspace}/{adminEmail}", s.handleListElements)
	s.mux.HandleFunc("GET /smartspace/elements/{userSmartspace}/{userEmail}", s.handleSearchElements)
	s.mux.HandleFunc("GET /smartspace/elements/{userSmartspace}/{userEmail}/{elementSmartspace}/{elementId}", s.handleGetElement)
	s.mux.HandleFunc("PUT /smartspace/elements/{userSmartspace}/{userEmail}/{elementSmartspace}/{elementId}", s.handleUpdateElement)

	s.mux.HandleFunc("POST /smartspace/admin/actions/{adminSmartspace}/{adminEmail}", s.handleImportActions)
	s.mux.HandleFunc("GET /smartspace/admin/actions/{adminSmartspace}/{adminEmail}", s.handleListActions)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// parsePaging reads size/page with the historical defaults of ten
// items starting at page zero. A malformed value is reported, not
// silently defaulted.
func parsePaging(r *http.Request) (size int, page int, ok bool) {
	size, page = 10, 0
	query := r.URL.Query()
	if raw := query.Get("size"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, false
		}
		size = value
	}
	if raw := query.Get("page"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, false
		}
		page = value
	}
	return size, page, true
}
