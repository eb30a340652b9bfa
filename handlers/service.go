package handlers

import (
	"net/http"
	"strings"

	"github.com/apex/log"
)

// ApplicationName keys the status document.
const ApplicationName = "my-application"

// Greeting is the body of the root route.
type Greeting struct {
	Message string `json:"message"`
}

// ErrorResponse is the body written for unmatched routes.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusEntry describes the running build.
type StatusEntry struct {
	Description string `json:"description"`
	Version     string `json:"version"`
	SHA         string `json:"sha"`
}

// StatusResponse is the body of the status route.
type StatusResponse struct {
	Application []StatusEntry `json:"my-application"`
}

// Service answers the greeting and status routes from metadata and a build
// identity captured once at startup. It does not listen on its own; callers
// decide how to serve Handler.
type Service struct {
	meta  Metadata
	build BuildIdentity
}

// NewService captures meta and build for the lifetime of the returned service.
func NewService(meta Metadata, build BuildIdentity) *Service {
	return &Service{meta: meta, build: build}
}

// Version is the metadata version suffixed with the build number.
func (s *Service) Version() string {
	return s.meta.Version + "-" + s.build.BuildNumber
}

// StatusResponse builds a new status document on every call.
func (s *Service) StatusResponse() StatusResponse {
	return StatusResponse{
		Application: []StatusEntry{
			{
				Description: s.meta.Description,
				Version:     s.Version(),
				SHA:         s.build.CommitSHA,
			},
		},
	}
}

// Handler returns the routing handler for the service.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.root)
	mux.HandleFunc("/status", s.status)
	s.registerSystem(mux)
	return withLogging(normalizePath(mux))
}

// normalizePath matches routes case-insensitively and ignores a single
// trailing slash, so /STATUS and /status/ both reach /status.
func normalizePath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := strings.ToLower(r.URL.Path)
		if len(p) > 1 {
			p = strings.TrimSuffix(p, "/")
		}
		if p != r.URL.Path {
			r = r.Clone(r.Context())
			r.URL.Path = p
			r.URL.RawPath = ""
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Service) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || !isRead(r) {
		notFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, Greeting{Message: "Hello, World!"})
}

func (s *Service) status(w http.ResponseWriter, r *http.Request) {
	if !isRead(r) {
		notFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, s.StatusResponse())
}

func notFound(w http.ResponseWriter, r *http.Request) {
	log.WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Debug("Route not found")
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Route not found"})
}

// isRead reports whether r is a GET, or a HEAD which net/http answers
// without a body.
func isRead(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}
