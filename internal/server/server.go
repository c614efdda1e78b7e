package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/equity-unlock/internal/advisor"
	"github.com/iwvelando/equity-unlock/internal/config"
	"github.com/iwvelando/equity-unlock/internal/scenario"
	"github.com/iwvelando/equity-unlock/pkg/constants"
	"github.com/iwvelando/equity-unlock/pkg/output"
	"github.com/iwvelando/equity-unlock/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	advisor       *advisor.Advisor
}

// NewHandler constructs the HTTP handler that serves the scenario API. A nil
// advisor answers insight requests with the fallback message.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, adv *advisor.Advisor) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if adv == nil {
		adv = advisor.New(logger, nil, nil)
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion, advisor: adv}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Post("/evaluate", h.handleEvaluate)
		r.Get("/presets", h.handleListPresets)
		r.Get("/presets/{tier}", h.handlePreset)
		r.Post("/liabilities/{op}", h.handleLiabilities)
		r.Post("/insight", h.handleInsight)
		r.Post("/export", h.handleExport)
	})

	return r
}

type evaluateResponse struct {
	Result   scenario.Result `json:"result"`
	Warnings []string        `json:"warnings,omitempty"`
	CSV      string          `json:"csv"`
	Duration string          `json:"duration"`
}

type presetResponse struct {
	Tier   string          `json:"tier"`
	Inputs scenario.Inputs `json:"inputs"`
	Result scenario.Result `json:"result"`
}

type liabilityRequest struct {
	Liabilities scenario.Liabilities `json:"liabilities"`
	ID          string               `json:"id,omitempty"`
	Field       string               `json:"field,omitempty"`
	Name        string               `json:"name,omitempty"`
	Amount      float64              `json:"amount,omitempty"`
	Balance     float64              `json:"balance,omitempty"`
	Payment     float64              `json:"monthlyPayment,omitempty"`
}

type insightResponse struct {
	Insight   string `json:"insight"`
	Available bool   `json:"available"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEvaluate"
	start := time.Now()

	in, ok := h.decodeInputs(w, r, op)
	if !ok {
		return
	}

	result := in.Evaluate()
	elapsed := time.Since(start)

	h.logger.Info("scenario evaluated",
		zap.String("op", op),
		zap.Int("liabilities", len(in.Liabilities)),
		zap.Float64("monthlySavings", result.MonthlySavings),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, evaluateResponse{
		Result:   result,
		Warnings: config.InputWarnings(in),
		CSV:      output.CsvString(output.Report{Inputs: in, Result: result}),
		Duration: elapsed.String(),
	})
}

func (h *handler) handleListPresets(w http.ResponseWriter, r *http.Request) {
	tiers := scenario.Tiers()
	names := make([]string, 0, len(tiers))
	for _, tier := range tiers {
		names = append(names, tier.String())
	}
	h.writeJSON(w, http.StatusOK, map[string][]string{"tiers": names})
}

func (h *handler) handlePreset(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePreset"

	tier, err := scenario.ParseTier(chi.URLParam(r, "tier"))
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error(), op)
		return
	}
	in, err := scenario.Preset(tier)
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, presetResponse{
		Tier:   tier.String(),
		Inputs: in,
		Result: in.Evaluate(),
	})
}

func (h *handler) handleLiabilities(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleLiabilities"

	var req liabilityRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	if err := config.ValidateInputs(scenario.Inputs{Liabilities: req.Liabilities}); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid liabilities: %v", err), op)
		return
	}

	var (
		updated scenario.Liabilities
		err     error
	)
	switch chi.URLParam(r, "op") {
	case "add":
		updated, err = req.Liabilities.Add(scenario.NewLiability(req.Name, req.Balance, req.Payment))
	case "remove":
		updated = req.Liabilities.Remove(req.ID)
	case "update":
		var field scenario.LiabilityField
		field, err = scenario.ParseLiabilityField(req.Field)
		if err == nil {
			updated, err = req.Liabilities.Apply(scenario.LiabilityPatch{
				ID:     req.ID,
				Field:  field,
				Name:   req.Name,
				Amount: req.Amount,
			})
		}
	default:
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("unknown liability operation %q", chi.URLParam(r, "op")), op)
		return
	}

	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, scenario.ErrLiabilityNotFound) {
			status = http.StatusNotFound
		}
		h.respondError(w, status, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]scenario.Liabilities{"liabilities": updated})
}

func (h *handler) handleInsight(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleInsight"

	in, ok := h.decodeInputs(w, r, op)
	if !ok {
		return
	}

	insight := h.advisor.Insight(r.Context(), in, in.Evaluate())
	h.writeJSON(w, http.StatusOK, insightResponse{
		Insight:   insight,
		Available: h.advisor.Available(),
	})
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"

	format := r.URL.Query().Get("format")
	if format == "" {
		format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(format); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	in, ok := h.decodeInputs(w, r, op)
	if !ok {
		return
	}

	report := output.Report{
		Name:     r.URL.Query().Get("name"),
		Inputs:   in,
		Result:   in.Evaluate(),
		Warnings: config.InputWarnings(in),
	}

	// Render fully before the status line so encoding failures become a 500.
	var body bytes.Buffer
	if err := output.Write(&body, format, report); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render export: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", output.ContentType(format))
	w.WriteHeader(http.StatusOK)
	if _, err := body.WriteTo(w); err != nil {
		h.logger.Error("failed to write export",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

// decodeInputs reads scenario inputs from the body and applies the boundary
// validation.
func (h *handler) decodeInputs(w http.ResponseWriter, r *http.Request, op string) (scenario.Inputs, bool) {
	var in scenario.Inputs
	if !h.decodeJSON(w, r, &in, op) {
		return in, false
	}
	if err := config.ValidateInputs(in); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid scenario: %v", err), op)
		return in, false
	}
	return in, true
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("request handled",
			zap.String("op", "server.logRequests"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
		body.Reset()
		status = http.StatusInternalServerError
		// A map of strings always encodes.
		_ = json.NewEncoder(&body).Encode(map[string]string{"error": "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := body.WriteTo(w); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
