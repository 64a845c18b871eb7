// Package server provides the thin HTTP layer around the quote evaluator.
// It deserializes whatever JSON the client sent into a loose request,
// tolerating missing or malformed fields, and serializes the rendered
// report back. Policy declines are normal 200 responses, never errors.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lenderkit/fha-loan-estimate/internal/quote"
	"github.com/lenderkit/fha-loan-estimate/pkg/constants"
	"github.com/lenderkit/fha-loan-estimate/pkg/report"
)

type handler struct {
	logger          *zap.Logger
	evaluator       *quote.Evaluator
	maxRequestBytes int64
	version         string
}

// NewHandler constructs the HTTP handler that serves the quote API.
func NewHandler(logger *zap.Logger, evaluator *quote.Evaluator, maxRequestBytes int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRequestBytes <= 0 {
		maxRequestBytes = constants.DefaultMaxRequestBytes
	}
	if version == "" {
		version = "dev"
	}

	h := &handler{
		logger:          logger,
		evaluator:       evaluator,
		maxRequestBytes: maxRequestBytes,
		version:         version,
	}

	r := chi.NewRouter()
	r.Post("/api/quote", h.handleQuote)
	r.Get("/api/version", h.handleVersion)
	r.Get("/healthz", h.handleHealth)
	return r
}

type quoteResponse struct {
	Report   string `json:"report"`
	Declined bool   `json:"declined"`
	Reason   string `json:"reason,omitempty"`
	Duration string `json:"duration"`
}

func (h *handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, requestID, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestBytes))
			return
		}
		h.respondError(w, requestID, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	result := h.evaluator.Evaluate(RequestFromPayload(payload))
	elapsed := time.Since(start)

	resp := quoteResponse{
		Report:   report.Render(result),
		Declined: result.Declined(),
		Duration: elapsed.String(),
	}
	if result.Declined() {
		resp.Reason = result.Decline.Code
	}

	h.logger.Info("quote evaluated",
		zap.String("op", "server.handleQuote"),
		zap.String("requestId", requestID),
		zap.Bool("declined", resp.Declined),
		zap.String("reason", resp.Reason),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RequestFromPayload maps recognized wire fields onto the loose request.
// Unknown keys are ignored; absent keys stay nil so the guard can name
// every missing field.
func RequestFromPayload(payload map[string]interface{}) quote.Request {
	field := func(keys ...string) interface{} {
		for _, k := range keys {
			if v, ok := payload[k]; ok {
				return v
			}
		}
		return nil
	}

	return quote.Request{
		PurchasePrice:        field("purchase_price"),
		BaseLoan:             field("base_loan"),
		DownPaymentValue:     field("down_payment_value"),
		DownPaymentIsPercent: field("down_payment_is_percent"),
		CreditScore:          field("fico", "credit_score"),
		MonthlyTaxes:         field("monthly_taxes"),
		MonthlyInsurance:     field("monthly_insurance"),
		MonthlyHOA:           field("hoa", "monthly_hoa"),
		PropertyType:         field("property_type"),
		LenderCreditPercent:  field("lender_credit_percent"),
		InterestRate:         field("interest_rate"),
		TermYears:            field("term_years"),
	}
}

func (h *handler) respondError(w http.ResponseWriter, requestID string, status int, msg string) {
	h.logger.Error("quote request failed",
		zap.String("op", "server.handleQuote"),
		zap.String("requestId", requestID),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
