package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/huepick/internal/colour"
	"github.com/jmylchreest/huepick/internal/config"
	"github.com/jmylchreest/huepick/internal/image"
	"github.com/jmylchreest/huepick/internal/security"
	"github.com/jmylchreest/huepick/internal/version"
)

// maxResolveQueries caps the q parameters accepted by one resolve call.
const maxResolveQueries = 100

var (
	// errBadRequest marks client errors that are not decode failures.
	errBadRequest = errors.New("bad request")

	// errUpstream marks failures fetching a remote image.
	errUpstream = errors.New("upstream fetch failed")
)

// Handler holds the shared, read-only state behind every route.
type Handler struct {
	cfg     config.Config
	palette *colour.Palette
	namer   *colour.Namer
	loader  image.Loader
	logger  hclog.Logger
}

type apiError struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// SwatchesResponse is the body of POST /v1/swatches.
type SwatchesResponse struct {
	RequestID string               `json:"request_id"`
	Width     int                  `json:"width"`
	Height    int                  `json:"height"`
	Options   colour.Options       `json:"options"`
	Swatches  []colour.NamedSwatch `json:"swatches"`
}

// ResolveResponse is the body of GET /v1/resolve.
type ResolveResponse struct {
	RequestID string              `json:"request_id"`
	Results   []colour.Resolution `json:"results"`
}

// PaletteResponse is the body of GET /v1/palette.
type PaletteResponse struct {
	Count   int            `json:"count"`
	Entries []colour.Entry `json:"entries"`
}

func newHandler(cfg config.Config, palette *colour.Palette, loader image.Loader, logger hclog.Logger) (*Handler, error) {
	if palette == nil {
		palette = colour.DefaultPalette()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	namer, err := colour.NewNamer(palette, cfg.NamerConfig())
	if err != nil {
		return nil, err
	}
	if err := cfg.Sampler.Validate(); err != nil {
		return nil, err
	}
	return &Handler{
		cfg:     cfg,
		palette: palette,
		namer:   namer,
		loader:  loader,
		logger:  logger.Named("api"),
	}, nil
}

// Healthz reports liveness, build info and the palette size.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": version.GetInfo(),
		"palette": h.palette.Len(),
	})
}

// Swatches samples an uploaded image (multipart field "image" or the raw
// request body) or, with ?url=, a remote one.
func (h *Handler) Swatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r)
		return
	}

	opts, err := samplerOptions(r, h.cfg.Sampler)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sampler, err := colour.NewSampler(opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	namer, err := h.namerFor(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	analyser, err := colour.NewAnalyser(sampler, namer)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	raster, err := h.readRaster(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	swatches := analyser.Analyse(raster)
	h.logger.Debug("sampled image",
		"request_id", RequestIDFrom(r.Context()),
		"width", raster.Width(),
		"height", raster.Height(),
		"swatches", len(swatches))

	writeJSON(w, http.StatusOK, SwatchesResponse{
		RequestID: RequestIDFrom(r.Context()),
		Width:     raster.Width(),
		Height:    raster.Height(),
		Options:   sampler.Options(),
		Swatches:  swatches,
	})
}

// Resolve names every q parameter, in order.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r)
		return
	}

	queries := r.URL.Query()["q"]
	if len(queries) == 0 {
		h.fail(w, r, fmt.Errorf("%w: at least one q parameter is required", errBadRequest))
		return
	}
	if len(queries) > maxResolveQueries {
		h.fail(w, r, fmt.Errorf("%w: at most %d q parameters are allowed", errBadRequest, maxResolveQueries))
		return
	}

	namer, err := h.namerFor(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	results := make([]colour.Resolution, len(queries))
	for i, q := range queries {
		results[i] = namer.Resolve(q)
	}
	writeJSON(w, http.StatusOK, ResolveResponse{
		RequestID: RequestIDFrom(r.Context()),
		Results:   results,
	})
}

// Palette lists the reference palette in lookup order.
func (h *Handler) Palette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r)
		return
	}
	entries := h.palette.Entries()
	writeJSON(w, http.StatusOK, PaletteResponse{Count: len(entries), Entries: entries})
}

func (h *Handler) readRaster(r *http.Request) (colour.Raster, error) {
	if u := strings.TrimSpace(r.URL.Query().Get("url")); u != "" {
		if h.loader == nil {
			return nil, fmt.Errorf("%w: url loading is disabled", errBadRequest)
		}
		if err := security.ValidateImageURL(u, h.cfg.AllowPrivateURLs); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		raster, err := h.loader.Load(r.Context(), u)
		if err != nil && !colour.IsDecodeError(err) {
			return nil, fmt.Errorf("%w: %w", errUpstream, err)
		}
		return raster, err
	}

	data, err := readUpload(r, h.cfg.MaxUploadSizeBytes)
	if err != nil {
		return nil, err
	}
	raster, _, err := image.DecodeBytesLimit(data, h.cfg.MaxPixels)
	return raster, err
}

func readUpload(r *http.Request, maxMemory int64) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return io.ReadAll(r.Body)
	}

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("%w: multipart field \"image\" is required", errBadRequest)
	}
	defer file.Close()
	return io.ReadAll(file)
}

func (h *Handler) namerFor(r *http.Request) (*colour.Namer, error) {
	v := r.URL.Query().Get("max_distance")
	if v == "" {
		return h.namer, nil
	}
	d, err := config.ParseMaxDistance(v)
	if err != nil {
		return nil, fmt.Errorf("%w: max_distance: %v", errBadRequest, err)
	}
	return colour.NewNamer(h.palette, colour.NamerConfig{MaxDistance: d})
}

// samplerOptions applies query overrides to base.
func samplerOptions(r *http.Request, base colour.Options) (colour.Options, error) {
	q := r.URL.Query()
	opts := base

	ints := []struct {
		key string
		dst *int
	}{
		{"max", &opts.MaxSwatches},
		{"step", &opts.QuantisationStep},
		{"stride", &opts.SampleStride},
		{"alpha", &opts.AlphaThreshold},
		{"white_threshold", &opts.NearWhiteThreshold},
		{"max_dimension", &opts.MaxDimension},
	}
	for _, p := range ints {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("%w: %s must be an integer", errBadRequest, p.key)
		}
		*p.dst = n
	}

	if v := q.Get("exclude_white"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("%w: exclude_white must be a boolean", errBadRequest)
		}
		opts.ExcludeNearWhite = b
	}

	return opts, opts.Validate()
}

// fail maps err to a status code and writes it.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	id := RequestIDFrom(r.Context())
	if code >= http.StatusInternalServerError {
		h.logger.Error("request failed", "request_id", id, "error", err)
	} else {
		h.logger.Debug("request rejected", "request_id", id, "status", code, "error", err)
	}
	writeJSON(w, code, apiError{Error: err.Error(), RequestID: id})
}

func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr), errors.Is(err, image.ErrTooManyPixels):
		return http.StatusRequestEntityTooLarge
	case colour.IsDecodeError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, colour.ErrInvalidOptions), errors.Is(err, errBadRequest),
		errors.Is(err, security.ErrPrivateAddress):
		return http.StatusBadRequest
	case errors.Is(err, errUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, apiError{
		Error:     "method not allowed",
		RequestID: RequestIDFrom(r.Context()),
	})
}
