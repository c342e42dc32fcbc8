// ABOUTME: Page and fragment handlers driving the analysis page through htmx requests
// ABOUTME: Validates form input, tracks in-flight requests per page and renders result fragments

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"mediacheck/api/middleware"
	"mediacheck/core/detection"
	"mediacheck/core/domain"
	"mediacheck/core/errors"
	"mediacheck/core/interfaces"
	"mediacheck/core/render"
	"mediacheck/pkg/config"
	"mediacheck/pkg/featureflags"
	"mediacheck/pkg/requestid"
)

const (
	htmlContentType = "text/html; charset=utf-8"

	// multipartMemory is how much of an upload is kept in memory before spilling to disk.
	multipartMemory = 8 << 20

	linkPreviewTimeout = 5 * time.Second

	// PageIDHeader carries the id rendered into each loaded page.
	PageIDHeader = render.PageIDHeader

	maxPageIDLen = 64
)

// MsgFileTooLarge is rendered when an upload exceeds the configured limit.
const MsgFileTooLarge = "File too large"

// UIConfig wires the page handler to its services
type UIConfig struct {
	Renderer    *render.Renderer
	News        interfaces.NewsSubmitter
	Deepfake    interfaces.DeepfakeSubmitter
	Preview     interfaces.PreviewService
	LinkPreview interfaces.LinkPreviewService
	Views       interfaces.ViewStore
	Tracker     *detection.Tracker
	Stats       *detection.Stats
	Logger      interfaces.Logger

	// MaxUploadBytes caps multipart request bodies
	MaxUploadBytes int64
}

// UIHandler serves the analysis page and its fragments
type UIHandler struct {
	cfg UIConfig
}

// NewUIHandler creates a new page handler
func NewUIHandler(cfg UIConfig) *UIHandler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = config.DefaultMaxUploadBytes
	}
	if cfg.Tracker == nil {
		cfg.Tracker = detection.NewTracker()
	}
	return &UIHandler{cfg: cfg}
}

// RegisterRoutes registers the page, fragment and media routes
func (h *UIHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Page)
	r.Get("/ui/tabs/{tabID}", h.SelectTab)
	r.Get("/ui/loading", h.Loading)
	r.Get("/ui/dashboard", h.Dashboard)
	r.Post("/ui/news/text", h.AnalyzeText)
	r.Post("/ui/news/url", h.AnalyzeURL)
	r.Post("/ui/deepfake", h.AnalyzeMedia)
	r.Post("/ui/preview", h.SelectFile)
	r.Get("/media/{id}", h.Media)
}

// Page handles GET /
func (h *UIHandler) Page(w http.ResponseWriter, r *http.Request) {
	state := h.cfg.Views.Load(r.Context(), middleware.SessionFromContext(r.Context()))

	h.writeFragment(w, r, http.StatusOK, func(buf io.Writer) error {
		return h.cfg.Renderer.Page(buf, render.PageData{
			State:          state,
			PageID:         requestid.New(),
			MaxUploadBytes: h.cfg.MaxUploadBytes,
		})
	})
}

// SelectTab handles GET /ui/tabs/{tabID}. Unknown ids re-render the current state.
func (h *UIHandler) SelectTab(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := middleware.SessionFromContext(ctx)
	tabID := chi.URLParam(r, "tabID")

	state := h.cfg.Views.Load(ctx, session)
	next := state.Select(tabID)
	if next.ActiveTabID != state.ActiveTabID {
		if err := h.cfg.Views.Save(ctx, session, next); err != nil {
			h.logWarn("Failed to save view state", map[string]interface{}{
				"tab":   tabID,
				"error": err.Error(),
			})
		}
	}

	h.writeFragment(w, r, http.StatusOK, func(buf io.Writer) error {
		return h.cfg.Renderer.Tabs(buf, next)
	})
}

// Loading handles GET /ui/loading
func (h *UIHandler) Loading(w http.ResponseWriter, r *http.Request) {
	h.writeFragment(w, r, http.StatusOK, h.cfg.Renderer.Loading)
}

// Dashboard handles GET /ui/dashboard
func (h *UIHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap := h.cfg.Stats.Snapshot()
	h.writeFragment(w, r, http.StatusOK, func(buf io.Writer) error {
		return h.cfg.Renderer.Dashboard(buf, snap)
	})
}

// AnalyzeText handles POST /ui/news/text
func (h *UIHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	method := r.PostFormValue("detection_method")
	if method == "" {
		method = domain.DefaultMethod
	}
	h.analyzeNews(w, r, domain.NewTextRequest(r.PostFormValue("text"), method))
}

// AnalyzeURL handles POST /ui/news/url
func (h *UIHandler) AnalyzeURL(w http.ResponseWriter, r *http.Request) {
	h.analyzeNews(w, r, domain.NewURLRequest(r.PostFormValue("url")))
}

func (h *UIHandler) analyzeNews(w http.ResponseWriter, r *http.Request, req domain.NewsRequest) {
	if err := req.Validate(); err != nil {
		h.blockingAlert(w, r, errors.UserMessage(err))
		return
	}

	ctx, ticket := h.cfg.Tracker.Begin(r.Context(), trackingScope(r), detection.TargetNews)
	defer ticket.Done()

	var (
		outcome domain.Outcome
		card    *domain.LinkPreview
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		outcome, err = h.cfg.News.Submit(gctx, req)
		return err
	})
	if req.DataType == domain.DataTypeURL && h.linkPreviewEnabled(ctx) {
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(gctx, linkPreviewTimeout)
			defer cancel()

			p, err := h.cfg.LinkPreview.Preview(pctx, req.URL)
			if err != nil {
				h.logDebug("Link preview unavailable", map[string]interface{}{
					"url":   req.URL,
					"error": err.Error(),
				})
				return nil
			}
			card = p
			return nil
		})
	}
	err := g.Wait()

	if !ticket.Current() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		h.handleSubmitError(w, r, err, req.FallbackMessage())
		return
	}

	h.writeFragment(w, r, http.StatusOK, func(buf io.Writer) error {
		if _, ok := outcome.(*domain.NewsReport); ok {
			if err := h.cfg.Renderer.LinkPreview(buf, card); err != nil {
				return err
			}
		}
		return h.cfg.Renderer.News(buf, outcome)
	})
}

// AnalyzeMedia handles POST /ui/deepfake
func (h *UIHandler) AnalyzeMedia(w http.ResponseWriter, r *http.Request) {
	upload, err := h.readUpload(w, r)
	switch {
	case errors.IsTooLarge(err):
		h.writeFragment(w, r, http.StatusOK, func(buf io.Writer) error {
			return h.cfg.Renderer.ErrorPanel(buf, MsgFileTooLarge)
		})
		return
	case err != nil:
		h.blockingAlert(w, r, domain.MsgNoFile)
		return
	}

	ctx, ticket := h.cfg.Tracker.Begin(r.Context(), trackingScope(r), detection.TargetDeepfake)
	defer ticket.Done()

	outcome, err := h.cfg.Deepfake.Submit(ctx, upload)

	if !ticket.Current() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		h.handleSubmitError(w, r, err, domain.MsgDeepfakeFailed)
		return
	}

	h.writeFragment(w, r, http.StatusOK, func(buf io.Writer) error {
		return h.cfg.Renderer.Deepfake(buf, outcome)
	})
}

// SelectFile handles POST /ui/preview. A request without a file changes nothing.
func (h *UIHandler) SelectFile(w http.ResponseWriter, r *http.Request) {
	upload, err := h.readUpload(w, r)
	switch {
	case errors.IsTooLarge(err):
		h.writeFragment(w, r, http.StatusOK, func(buf io.Writer) error {
			return h.cfg.Renderer.Preview(buf, &domain.Preview{Kind: domain.MediaUnsupported, Notice: MsgFileTooLarge})
		})
		return
	case err != nil:
		w.WriteHeader(http.StatusNoContent)
		return
	}

	scope := trackingScope(r)
	ctx, ticket := h.cfg.Tracker.Begin(r.Context(), scope, detection.TargetPreview)
	defer ticket.Done()

	preview, err := h.cfg.Preview.Select(ctx, scope, upload)

	if !ticket.Current() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		h.logError("Failed to prepare preview", map[string]interface{}{
			"filename": upload.Filename,
			"error":    err.Error(),
		})
		http.Error(w, "Preview unavailable", http.StatusInternalServerError)
		return
	}

	h.writeFragment(w, r, http.StatusOK, func(buf io.Writer) error {
		return h.cfg.Renderer.Preview(buf, preview)
	})
}

// Media handles GET /media/{id}
func (h *UIHandler) Media(w http.ResponseWriter, r *http.Request) {
	media, err := h.cfg.Preview.Media(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		h.logError("Failed to load media", map[string]interface{}{
			"error": err.Error(),
		})
		http.Error(w, "Media unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", media.ContentType)
	w.Header().Set("Cache-Control", "private, max-age=300")
	http.ServeContent(w, r, "", time.Time{}, bytes.NewReader(media.Data))
}

// readUpload reads the "file" part of a multipart request. A missing or unnamed file
// is a ValidationError and an oversized body is a TooLargeError.
func (h *UIHandler) readUpload(w http.ResponseWriter, r *http.Request) (*domain.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isTooLarge(err) {
			return nil, &errors.TooLargeError{Limit: h.cfg.MaxUploadBytes}
		}
		return nil, &errors.ValidationError{Field: "file", Message: domain.MsgNoFile}
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil || header.Filename == "" {
		if file != nil {
			file.Close()
		}
		return nil, &errors.ValidationError{Field: "file", Message: domain.MsgNoFile}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.WrapError(err, "read upload")
	}

	return domain.NewUpload(header.Filename, header.Header.Get("Content-Type"), data), nil
}

// trackingScope identifies the page a request came from. Pages send the id they were
// rendered with; requests without one share the session scope.
func trackingScope(r *http.Request) string {
	session := middleware.SessionFromContext(r.Context())
	if session == "" {
		return ""
	}
	page := strings.TrimSpace(r.Header.Get(PageIDHeader))
	if page == "" || len(page) > maxPageIDLen {
		return session
	}
	return session + "/" + page
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

// handleSubmitError renders errors that escaped a submitter. Validation errors become
// blocking alerts, a cancelled request gets an empty 204 and anything else shows the
// fallback message of the form that sent the request.
func (h *UIHandler) handleSubmitError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.IsValidation(err):
		h.blockingAlert(w, r, errors.UserMessage(err))
	case stderrors.Is(err, context.Canceled):
		w.WriteHeader(http.StatusNoContent)
	default:
		h.logError("Analysis request failed", map[string]interface{}{
			"path":  r.URL.Path,
			"error": err.Error(),
		})
		h.writeFragment(w, r, http.StatusOK, func(buf io.Writer) error {
			return h.cfg.Renderer.ErrorPanel(buf, fallback)
		})
	}
}

// blockingAlert tells the page to show msg in a modal alert and leave the target as it is.
func (h *UIHandler) blockingAlert(w http.ResponseWriter, r *http.Request, msg string) {
	trigger, err := json.Marshal(map[string]string{"blockingAlert": msg})
	if err == nil {
		w.Header().Set("HX-Trigger", string(trigger))
	}
	w.Header().Set("HX-Reswap", "none")

	h.writeFragment(w, r, http.StatusUnprocessableEntity, func(buf io.Writer) error {
		return h.cfg.Renderer.BlockingAlert(buf, msg)
	})
}

// writeFragment renders into a buffer so a template error never leaves a partial body.
func (h *UIHandler) writeFragment(w http.ResponseWriter, r *http.Request, status int, fn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		h.logError("Failed to render fragment", map[string]interface{}{
			"path":  r.URL.Path,
			"error": err.Error(),
		})
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", htmlContentType)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *UIHandler) linkPreviewEnabled(ctx context.Context) bool {
	return h.cfg.LinkPreview != nil && featureflags.IsEnabled(ctx, featureflags.LinkPreview)
}

func (h *UIHandler) logDebug(msg string, fields map[string]interface{}) {
	if h.cfg.Logger != nil {
		h.cfg.Logger.Debug(msg, fields)
	}
}

func (h *UIHandler) logWarn(msg string, fields map[string]interface{}) {
	if h.cfg.Logger != nil {
		h.cfg.Logger.Warn(msg, fields)
	}
}

func (h *UIHandler) logError(msg string, fields map[string]interface{}) {
	if h.cfg.Logger != nil {
		h.cfg.Logger.Error(msg, fields)
	}
}
