package handler

//go:generate mockgen -source=handler.go -destination=mocks/mock_service.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gimm/internal/genealogy/models"
	"gimm/internal/genealogy/pedigree"
	"gimm/internal/genealogy/search"
	dErrors "gimm/pkg/domain-errors"
	"gimm/pkg/platform/httputil"
	"gimm/pkg/requestcontext"
)

const maxFormBytes = 64 << 10

// Service answers page requests with rendered HTML.
type Service interface {
	Sheet(ctx context.Context, id models.IndividualID) (string, error)
	Pedigree(ctx context.Context, id models.IndividualID, levels int) (string, error)
	Descendants(ctx context.Context, id models.IndividualID, levels int) (string, error)
	MasterIndex(ctx context.Context) (string, error)
	IndexPage(ctx context.Context, n int) (string, error)
	Surnames(ctx context.Context) (string, error)
	Search(ctx context.Context, q search.Query) (string, error)
	SnapshotVersion() (string, error)
}

// Handler serves the genealogy pages.
type Handler struct {
	service     Service
	logger      *slog.Logger
	searchLimit func(http.Handler) http.Handler
}

// Option configures a Handler.
type Option func(*Handler)

// WithSearchMiddleware wraps the search routes, typically with a rate limiter.
func WithSearchMiddleware(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.searchLimit = mw
	}
}

// New creates a Handler.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{service: service, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the genealogy routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleMasterIndex)
	r.Get("/index", h.handleMasterIndex)
	r.Get("/index/{n}", h.handleIndexPage)
	r.Get("/individual/{id}", h.handleSheet)
	r.Get("/individual/{id}/pedigree", h.handlePedigree)
	r.Get("/individual/{id}/descendents", h.handleDescendants)
	r.Get("/surnames", h.handleSurnames)

	r.Group(func(r chi.Router) {
		if h.searchLimit != nil {
			r.Use(h.searchLimit)
		}
		r.Get("/search", h.handleSearch)
		r.Post("/search", h.handleSearch)
	})

	r.Get("/logs", h.handleNotImplemented)
	r.Get("/counters", h.handleNotImplemented)
	r.Get("/guestbook", h.handleNotImplemented)
	r.Post("/guestbook", h.handleNotImplemented)

	r.Get("/healthz", h.handleHealth)
}

func (h *Handler) handleMasterIndex(w http.ResponseWriter, r *http.Request) {
	html, err := h.service.MasterIndex(r.Context())
	h.respond(w, r, html, err)
}

func (h *Handler) handleIndexPage(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeNotFound, "index page not found"))
		return
	}
	html, err := h.service.IndexPage(r.Context(), n)
	h.respond(w, r, html, err)
}

func (h *Handler) handleSheet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.individualID(w, r)
	if !ok {
		return
	}
	html, err := h.service.Sheet(r.Context(), id)
	h.respond(w, r, html, err)
}

func (h *Handler) handlePedigree(w http.ResponseWriter, r *http.Request) {
	id, ok := h.individualID(w, r)
	if !ok {
		return
	}
	levels, ok := h.maxLevel(w, r)
	if !ok {
		return
	}
	html, err := h.service.Pedigree(r.Context(), id, levels)
	h.respond(w, r, html, err)
}

func (h *Handler) handleDescendants(w http.ResponseWriter, r *http.Request) {
	id, ok := h.individualID(w, r)
	if !ok {
		return
	}
	levels, ok := h.maxLevel(w, r)
	if !ok {
		return
	}
	html, err := h.service.Descendants(r.Context(), id, levels)
	h.respond(w, r, html, err)
}

func (h *Handler) handleSurnames(w http.ResponseWriter, r *http.Request) {
	html, err := h.service.Surnames(r.Context())
	h.respond(w, r, html, err)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid search form"))
			return
		}
	}
	q := search.Query{
		Text:    r.FormValue("q"),
		Surname: r.FormValue("surname"),
		Given:   r.FormValue("given"),
	}
	html, err := h.service.Search(r.Context(), q)
	h.respond(w, r, html, err)
}

func (h *Handler) handleNotImplemented(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "not implemented", "path", r.URL.Path)
	httputil.WriteError(w, dErrors.New(dErrors.CodeNotImplemented, "this page is not available"))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	version, err := h.service.SnapshotVersion()
	if err != nil {
		httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "snapshot": version})
}

// individualID parses the {id} route parameter. Anything that is not a
// positive integer is reported as not found.
func (h *Handler) individualID(w http.ResponseWriter, r *http.Request) (models.IndividualID, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || n <= 0 {
		h.writeError(w, r, dErrors.New(dErrors.CodeNotFound, "individual not found"))
		return 0, false
	}
	return models.IndividualID(n), true
}

// maxLevel parses the optional maxlevel query parameter.
func (h *Handler) maxLevel(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("maxlevel")
	if raw == "" {
		return pedigree.DefaultLevels, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "maxlevel must be an integer"))
		return 0, false
	}
	return n, true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, html string, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteHTML(w, http.StatusOK, html)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	status := dErrors.HTTPStatus(dErrors.CodeOf(err))
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "request failed",
			"request_id", requestcontext.RequestID(ctx),
			"path", r.URL.Path,
			"error", err,
		)
	} else {
		h.logger.DebugContext(ctx, "request rejected",
			"request_id", requestcontext.RequestID(ctx),
			"path", r.URL.Path,
			"status", status,
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
