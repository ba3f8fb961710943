// Package httpapi is the HTTP boundary over the editor core.
// It translates outcomes into JSON payloads; no business rules live here.
package httpapi

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/svcedit/svcedit/pkg/core"
)

//go:embed templates/editor.html
var templates embed.FS

// Server exposes the editor over HTTP.
type Server struct {
	editor *core.Editor
	logger *slog.Logger
	page   *template.Template
}

// NewServer creates the HTTP boundary for an editor.
func NewServer(editor *core.Editor, logger *slog.Logger) *Server {
	page := template.Must(template.ParseFS(templates, "templates/editor.html"))
	return &Server{
		editor: editor,
		logger: logger,
		page:   page,
	}
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Post("/validate", s.handleValidate)
	r.Post("/save", s.handleSave)
	r.Get("/reload", s.handleReload)
	r.Get("/backups", s.handleBackups)
	r.Post("/restore/{filename}", s.handleRestore)
	r.Get("/activity", s.handleActivity)

	return r
}

type contentRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	doc, err := s.editor.Current(r.Context())
	if err != nil {
		s.logger.Error("failed to load document", "error", err)
		http.Error(w, "failed to load document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, map[string]any{
		"Content": string(doc.Content),
		"Path":    doc.Path,
	}); err != nil {
		s.logger.Error("failed to render editor page", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := s.editor.Health(r.Context())
	status := "healthy"
	code := http.StatusOK
	if !h.DocumentReachable || !h.BackupDirWritable {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	s.writeJSON(w, code, map[string]any{
		"status":              status,
		"document_reachable":  h.DocumentReachable,
		"backup_dir_writable": h.BackupDirWritable,
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !s.decode(w, r, &req) {
		return
	}

	res := s.editor.Validate(req.Content)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"valid":   res.Valid,
		"error":   res.Detail,
		"warning": res.Warning,
	})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !s.decode(w, r, &req) {
		return
	}

	out := s.editor.Save(r.Context(), req.Content)
	s.writeOutcome(w, out)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	doc, err := s.editor.Current(r.Context())
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"content": string(doc.Content)})
}

func (s *Server) handleBackups(w http.ResponseWriter, r *http.Request) {
	entries, err := s.editor.Backups(r.Context())
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []core.BackupEntry{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"backups": entries})
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	out := s.editor.Restore(r.Context(), name)
	if errors.Is(out.Err, core.ErrBackupNotFound) {
		s.writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   out.Message,
		})
		return
	}
	s.writeOutcome(w, out)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid limit"})
			return
		}
		limit = n
	}

	events := s.editor.Activity(limit)
	if events == nil {
		events = []core.ActivityEvent{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"activity": events})
}

// writeOutcome maps a pipeline outcome to a response payload.
// The duplicate no-op is a success with no_changes set, never an error:
// the UI renders it as a neutral message.
func (s *Server) writeOutcome(w http.ResponseWriter, out core.Outcome) {
	switch out.Status {
	case core.StatusSaved:
		s.writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": out.Message,
			"backup":  out.Backup,
		})
	case core.StatusUnchanged:
		s.writeJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"message":    out.Message,
			"no_changes": true,
		})
	case core.StatusRejected:
		s.writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   out.Message,
		})
	default:
		s.writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   out.Message,
		})
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
