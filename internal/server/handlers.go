package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pkgview/pkg/errors"
	"github.com/matzehuels/pkgview/pkg/header"
	"github.com/matzehuels/pkgview/pkg/observability"
)

// headerResponse is the body of GET /api/header/*.
type headerResponse struct {
	*header.Header
	Filename string `json:"filename"`
	URL      string `json:"url"` // Files-view URL of this version and file.
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listPackages(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"packages": names})
}

func (s *Server) getHeader(w http.ResponseWriter, r *http.Request) {
	name, spec := splitSpec(chi.URLParam(r, "*"))
	if err := errors.ValidateNpmPackageName(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	filename := r.URL.Query().Get("filename")
	if err := errors.ValidateFilePath(filename); err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	version, err := rec.ResolveVersion(spec)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	start := time.Now()
	h, err := s.resolver.Resolve(rec, version, filename)
	observability.Resolve().OnResolve(r.Context(), name, version, time.Since(start), err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, headerResponse{
		Header:   h,
		Filename: filename,
		URL:      s.hrefs.Files(name, version, filename),
	})
}

// splitSpec splits "name@version" into its parts. The leading "@" of a
// scoped name is not a separator. The version is "" when absent.
func splitSpec(s string) (name, version string) {
	s = strings.Trim(s, "/")
	i := strings.LastIndex(s, "@")
	if i <= 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsInvalid(err):
		status = http.StatusBadRequest
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", requestIDFromContext(r.Context()))
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
