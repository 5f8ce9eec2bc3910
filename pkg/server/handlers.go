package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/heatsvg/pkg/buildinfo"
	"github.com/matzehuels/heatsvg/pkg/errors"
	"github.com/matzehuels/heatsvg/pkg/gradient"
	"github.com/matzehuels/heatsvg/pkg/pipeline"
	"github.com/matzehuels/heatsvg/pkg/records"
)

// Handler implements the API endpoints.
type Handler struct {
	Runner       *pipeline.Runner
	Logger       *log.Logger
	MaxBodyBytes int64
}

// RenderRequest is the body of POST /render.
type RenderRequest struct {
	Records []records.Record `json:"records"`
	Options pipeline.Options `json:"options"`
}

// PresetResponse describes one built-in gradient.
type PresetResponse struct {
	Name  string              `json:"name"`
	Stops []pipeline.StopSpec `json:"stops"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// Health reports liveness and the build version.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// Presets lists the built-in gradients in display order.
func (h *Handler) Presets(w http.ResponseWriter, r *http.Request) {
	out := make([]PresetResponse, len(gradient.Presets))
	for i, p := range gradient.Presets {
		out[i] = PresetResponse{Name: p.Name, Stops: pipeline.Stops(p.Gradient)}
	}
	writeJSON(w, http.StatusOK, out)
}

// Render runs the pipeline for one request and returns a single artifact.
// The format comes from ?format=, then options.output.formats[0], then svg.
// Requests without an id suffix get a random one so documents combining
// several responses do not collide.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeRender(w, r)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" && len(req.Options.Output.Formats) > 0 {
		format = req.Options.Output.Formats[0]
	}
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		h.writeAppError(w, r, err)
		return
	}
	req.Options.Output.Formats = []string{format}

	if req.Options.IDSuffix == "" {
		req.Options.IDSuffix = newIDSuffix()
	}
	req.Options.Logger = h.Logger.With("request_id", RequestID(r.Context()))

	result, err := h.Runner.Execute(r.Context(), req.Records, req.Options)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	cacheStatus := "MISS"
	if result.CacheInfo.RenderHit {
		cacheStatus = "HIT"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("X-Heatmap-ID-Suffix", req.Options.IDSuffix)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (h *Handler) decodeRender(w http.ResponseWriter, r *http.Request) (RenderRequest, error) {
	var req RenderRequest
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.MaxBodyBytes))
	if err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	if req.Records == nil {
		return req, errors.New(errors.ErrCodeInvalidInput, `request has no "records" array`)
	}
	return req, nil
}

// newIDSuffix returns the first 8 hex digits of a random uuid.
func newIDSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeAppError maps coded errors to HTTP statuses. Internal failures are
// logged and masked.
func (h *Handler) writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrorResponse{
		Code:      string(errors.GetCode(err)),
		Message:   errors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	}

	status := http.StatusInternalServerError
	switch {
	case errors.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeUnsupported):
		status = http.StatusNotImplemented
	case r.Context().Err() != nil:
		status = http.StatusServiceUnavailable
	}

	if status >= 500 {
		h.Logger.Error("render failed", "error", err, "request_id", resp.RequestID)
		if status == http.StatusInternalServerError {
			resp.Code = string(errors.ErrCodeInternal)
			resp.Message = "internal server error"
		}
	}
	if resp.Code == "" {
		resp.Code = string(errors.ErrCodeInternal)
	}
	writeJSON(w, status, resp)
}
