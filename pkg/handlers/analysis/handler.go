package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/finreport/pkg/adapters"
	"github.com/de-tools/finreport/pkg/models/api"
	"github.com/de-tools/finreport/pkg/models/domain"
	analysissvc "github.com/de-tools/finreport/pkg/services/analysis"
	"github.com/de-tools/finreport/pkg/services/dataset"
	"github.com/de-tools/finreport/pkg/services/report"
)

const defaultMaxUploadBytes = 5 << 20

// Analyzer is the analysis service as seen by the handlers.
type Analyzer interface {
	Analyze(ctx context.Context, r io.Reader, opts analysissvc.Options) (domain.Result, error)
	AnalyzePeriods(ctx context.Context, periods []domain.Period, opts analysissvc.Options) (domain.Result, error)
	NarrativeEnabled() bool
}

type Handler struct {
	analyzer       Analyzer
	assembler      *report.Assembler
	providers      []string
	maxUploadBytes int64
}

func NewHandler(analyzer Analyzer, assembler *report.Assembler, providers []string, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{
		analyzer:       analyzer,
		assembler:      assembler,
		providers:      providers,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, api.HealthResponse{
		Status:    "ok",
		Narrative: h.analyzer.NarrativeEnabled(),
		Providers: h.providers,
	})
}

// Analyze accepts a multipart upload in the "file" field or a raw CSV body.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	mode, ok := adapters.MapAnalysisModeApiToDomain(r.URL.Query().Get("mode"))
	if !ok {
		writeError(ctx, w, http.StatusBadRequest, "mode must be 'template' or 'narrative'")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	body, closeBody, err := h.csvSource(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	defer closeBody()

	result, err := h.analyzer.Analyze(ctx, body, analysissvc.Options{Mode: mode})
	h.respond(ctx, w, result, err)
}

func (h *Handler) csvSource(r *http.Request) (io.Reader, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, func() {}, nil
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, errors.New("upload is too large")
		}
		return nil, nil, errors.New("multipart upload must carry a 'file' field")
	}
	return file, func() { _ = file.Close() }, nil
}

// AnalyzeManual analyzes periods entered by hand.
func (h *Handler) AnalyzeManual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ManualAnalysisRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadBytes)).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	modeValue := req.Mode
	if modeValue == "" {
		modeValue = r.URL.Query().Get("mode")
	}
	mode, ok := adapters.MapAnalysisModeApiToDomain(modeValue)
	if !ok {
		writeError(ctx, w, http.StatusBadRequest, "mode must be 'template' or 'narrative'")
		return
	}

	result, err := h.analyzer.AnalyzePeriods(ctx, adapters.MapPeriodsApiToDomain(req.Periods), analysissvc.Options{Mode: mode})
	if errors.Is(err, dataset.ErrInvalidPeriods) {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	h.respond(ctx, w, result, err)
}

// RenderReport assembles the template report from a metrics mapping.
func (h *Handler) RenderReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var values map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadBytes)).Decode(&values); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid metrics mapping: "+err.Error())
		return
	}

	assembled, err := h.assembler.AssembleMap(values)
	if err != nil {
		logger.Error().Err(err).Msg("failed to assemble report")
		writeError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	html, err := report.RenderHTML(assembled.Report)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to render report html")
	}

	writeJSON(ctx, w, http.StatusOK, api.RenderResponse{
		Metrics:    assembled.Metrics.AsMap(),
		Report:     assembled.Report,
		ReportHTML: html,
	})
}

func (h *Handler) respond(ctx context.Context, w http.ResponseWriter, result domain.Result, err error) {
	logger := zerolog.Ctx(ctx)

	switch {
	case errors.Is(err, analysissvc.ErrNarrativeUnavailable):
		writeError(ctx, w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		logger.Error().Err(err).Msg("report generation failed")
		writeError(ctx, w, http.StatusBadGateway, err.Error())
		return
	case result.Failed():
		writeError(ctx, w, http.StatusBadRequest, result.Error)
		return
	}

	html, err := report.RenderHTML(result.Report)
	if err != nil {
		logger.Warn().Err(err).Str("analysis_id", result.ID).Msg("failed to render report html")
	}

	writeJSON(ctx, w, http.StatusOK, adapters.MapResultDomainToApi(result, html))
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	writeJSON(ctx, w, status, api.ErrorResponse{Error: strings.TrimSpace(message)})
}

// writeJSON encodes before writing the header so an unencodable value (such as
// an overflowed total) still yields a JSON error body.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(api.ErrorResponse{Error: "failed to encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
