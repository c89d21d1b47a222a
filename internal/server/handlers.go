package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/popover/pkg/buildinfo"
	"github.com/matzehuels/popover/pkg/cache"
	"github.com/matzehuels/popover/pkg/config"
	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/render/gallery"
	"github.com/matzehuels/popover/pkg/render/statechart"
	"github.com/matzehuels/popover/pkg/visibility"
)

const maxBodyBytes = 1 << 16

type handlers struct {
	cfg      config.Config
	logger   *log.Logger
	cache    cache.Cache
	resolver *placement.Resolver
	charts   *statechart.Renderer
}

func newHandlers(opts Options) *handlers {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	c := opts.Cache
	if c == nil {
		c = cache.NewMemoryCache()
	}
	return &handlers{
		cfg:      opts.Config,
		logger:   logger,
		cache:    c,
		resolver: placement.NewResolver(opts.Config.Resolver()),
		charts:   statechart.NewRenderer(c, 0, logger),
	}
}

func (h *handlers) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start).Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()),
		)
	})
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

type placementInfo struct {
	Token string          `json:"token"`
	Side  placement.Side  `json:"side"`
	Align placement.Align `json:"align"`
}

func (h *handlers) placements(w http.ResponseWriter, r *http.Request) {
	all := placement.All()
	out := make([]placementInfo, len(all))
	for i, p := range all {
		out[i] = placementInfo{Token: p.String(), Side: p.Side, Align: p.Align}
	}
	writeJSON(w, http.StatusOK, out)
}

// resolveRequest is the body of POST /api/v1/resolve. Position defaults
// to the configured tooltip position.
type resolveRequest struct {
	Trigger       geom.Rect `json:"trigger"`
	Viewport      geom.Rect `json:"viewport"`
	Panel         geom.Size `json:"panel"`
	Position      string    `json:"position"`
	MinPanelWidth *float64  `json:"min_panel_width,omitempty"`
}

func (req resolveRequest) validate() error {
	if err := req.Trigger.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "trigger")
	}
	if err := req.Viewport.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "viewport")
	}
	if err := req.Panel.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "panel")
	}
	if req.MinPanelWidth != nil {
		return errors.ValidateDimension("min_panel_width", *req.MinPanelWidth)
	}
	return nil
}

func (h *handlers) resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	pos := req.Position
	if pos == "" {
		pos = h.cfg.Tooltip.Position
	}
	p, err := placement.Parse(pos)
	if err != nil {
		writeError(w, err)
		return
	}

	resolver := h.resolver
	if req.MinPanelWidth != nil {
		resolver = placement.NewResolver(placement.Config{MinPanelWidth: *req.MinPanelWidth})
	}
	writeJSON(w, http.StatusOK, resolver.Resolve(req.Trigger, req.Viewport, req.Panel, p))
}

func (h *handlers) gallery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := gallery.Options{Resolver: h.resolver, Title: q.Get("title")}
	if s := q.Get("columns"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > 12 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "columns must be between 1 and 12"))
			return
		}
		opts.Columns = n
	}
	interactive := q.Get("static") == ""

	key := cache.Key("gallery", h.resolver.Config(), opts.Columns, opts.Title, interactive)
	if data, ok, _ := h.cache.Get(r.Context(), key); ok {
		writeSVG(w, data)
		return
	}

	svg, err := gallery.Render(opts, interactive)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.cache.Set(r.Context(), key, svg, 0); err != nil {
		h.logger.Warn("gallery cache write failed", "err", err)
	}
	writeSVG(w, svg)
}

// states serves /states/{mode}.svg and /states/{mode}.dot.
func (h *handlers) states(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	name, ext, ok := strings.Cut(file, ".")
	if !ok || (ext != "svg" && ext != "dot") {
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "want /states/{mode}.svg or /states/{mode}.dot"))
		return
	}
	mode, err := visibility.ParseMode(name)
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	opts := statechart.Options{
		DefaultVisible: q.Get("default_visible") != "",
		Controlled:     q.Get("controlled") != "",
	}
	if ext == "dot" {
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		_, _ = w.Write([]byte(statechart.ToDOT(mode, opts)))
		return
	}

	svg, _, err := h.charts.Render(r.Context(), mode, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSVG(w, svg)
}

func writeSVG(w http.ResponseWriter, svg []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("encode JSON response", "err", err)
	}
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.Status(err), errorBody{Code: errors.GetCode(err), Message: errors.UserMessage(err)})
}
