// Package server exposes the recalculation engine over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/owengrv/running-the-numbers/internal/config"
	"github.com/owengrv/running-the-numbers/internal/engine"
	"github.com/owengrv/running-the-numbers/internal/scenario"
	"github.com/owengrv/running-the-numbers/internal/sharelink"
	"github.com/owengrv/running-the-numbers/internal/store"
	"github.com/owengrv/running-the-numbers/pkg/constants"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	appConfig     *config.Configuration
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the scenario API.
func NewHandler(logger *zap.Logger, appConfig *config.Configuration, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if appConfig == nil {
		appConfig = config.Default()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		appConfig:     appConfig,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/api/scenario", h.handleScenario)
	r.Post("/api/scenario/upload", h.handleScenarioUpload)
	r.Post("/api/scenario/share", h.handleScenarioShare)
	r.Get("/api/version", h.handleVersion)

	return r
}

type scenarioResponse struct {
	Variant     string             `json:"variant"`
	Home        homePayload        `json:"home"`
	Closing     closingPayload     `json:"closing"`
	CashFlow    cashFlowPayload    `json:"cashFlow"`
	Loans       *loanPayload       `json:"loans,omitempty"`
	Investments *investmentPayload `json:"investments,omitempty"`
	Projection  []projectionRow    `json:"projection,omitempty"`
	OutOfPocket *outOfPocketRow    `json:"outOfPocket,omitempty"`
	Snapshot    scenario.Snapshot  `json:"snapshot"`
	Duration    string             `json:"duration"`
}

type homePayload struct {
	PurchasePrice     float64 `json:"purchasePrice"`
	DownAmount        float64 `json:"downAmount"`
	LoanAmount        float64 `json:"loanAmount"`
	PrincipalInterest float64 `json:"principalInterest"`
	TaxMonthly        float64 `json:"taxMonthly"`
	InsuranceMonthly  float64 `json:"insuranceMonthly"`
	PMIMonthly        float64 `json:"pmiMonthly"`
	TotalMonthly      float64 `json:"totalMonthly"`
	TotalInterest     float64 `json:"totalInterest"`
	TotalCost         float64 `json:"totalCost"`
}

type closingPayload struct {
	OriginationFee  float64 `json:"originationFee"`
	PrepaidInterest float64 `json:"prepaidInterest"`
	Total           float64 `json:"total"`
	CashToClose     float64 `json:"cashToClose"`
}

type cashFlowPayload struct {
	GrossMonthly  float64 `json:"grossMonthly"`
	NetMonthly    float64 `json:"netMonthly"`
	TotalExpenses float64 `json:"totalExpenses"`
	Surplus       float64 `json:"surplus"`
	AnnualSurplus float64 `json:"annualSurplus"`
	Ratio         float64 `json:"ratio"`
	Band          string  `json:"band"`
}

type loanPayload struct {
	Count          int     `json:"count"`
	TotalDebt      float64 `json:"totalDebt"`
	TotalMonthly   float64 `json:"totalMonthly"`
	AverageRatePct float64 `json:"averageRatePct"`
}

type investmentPayload struct {
	TotalValue     float64 `json:"totalValue"`
	BlendedCAGRPct float64 `json:"blendedCagrPct"`
}

type projectionRow struct {
	Years       int      `json:"years"`
	HomeValue   float64  `json:"homeValue"`
	Equity      float64  `json:"equity"`
	Investments float64  `json:"investments"`
	Debt        float64  `json:"debt"`
	NetWorth    float64  `json:"netWorth"`
	Change      *float64 `json:"change,omitempty"`
}

type outOfPocketRow struct {
	CashToClose        float64 `json:"cashToClose"`
	RenovationSubtotal float64 `json:"renovationSubtotal"`
	Contingency        float64 `json:"contingency"`
	Total              float64 `json:"total"`
}

func (h *handler) handleScenario(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var snap scenario.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode scenario: %v", err), "server.handleScenario")
		return
	}

	h.runScenario(w, snap, start, "server.handleScenario")
}

func (h *handler) handleScenarioUpload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleScenarioUpload")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleScenarioUpload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing scenario file", "server.handleScenarioUpload")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleScenarioUpload"),
				zap.Error(closeErr),
			)
		}
	}()

	snap, err := store.Import(file)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleScenarioUpload")
		return
	}

	h.runScenario(w, *snap, start, "server.handleScenarioUpload")
}

func (h *handler) handleScenarioShare(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var snap scenario.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode scenario: %v", err), "server.handleScenarioShare")
		return
	}

	fragment, err := sharelink.Encode(snap)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode share link: %v", err), "server.handleScenarioShare")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"fragment": fragment})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) runScenario(w http.ResponseWriter, snap scenario.Snapshot, start time.Time, op string) {
	state := scenario.NewState(h.appConfig.ScenarioVariant(), h.appConfig.Defaults)
	eng := engine.New(h.logger, state)
	eng.Restore(snap)
	derived := eng.Derived()

	response := buildResponse(state, derived)
	response.Duration = time.Since(start).String()

	h.logger.Info("scenario computed",
		zap.String("op", op),
		zap.String("variant", string(state.Variant)),
		zap.Duration("duration", time.Since(start)),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func buildResponse(state *scenario.State, d engine.Derived) scenarioResponse {
	response := scenarioResponse{
		Variant: string(state.Variant),
		Home: homePayload{
			PurchasePrice:     d.Home.PurchasePrice,
			DownAmount:        d.Home.DownAmount,
			LoanAmount:        d.Home.LoanAmount,
			PrincipalInterest: d.Home.PrincipalInterest,
			TaxMonthly:        d.Home.TaxMonthly,
			InsuranceMonthly:  d.Home.InsuranceMonthly,
			PMIMonthly:        d.Home.PMIMonthly,
			TotalMonthly:      d.Home.TotalMonthly,
			TotalInterest:     d.Home.TotalInterest,
			TotalCost:         d.Home.TotalCost,
		},
		Closing: closingPayload{
			OriginationFee:  d.Closing.OriginationFee,
			PrepaidInterest: d.Closing.PrepaidInterest,
			Total:           d.Closing.Total,
			CashToClose:     d.Closing.CashToClose,
		},
		CashFlow: cashFlowPayload{
			GrossMonthly:  d.CashFlow.GrossMonthly,
			NetMonthly:    d.CashFlow.NetMonthly,
			TotalExpenses: d.CashFlow.TotalExpenses,
			Surplus:       d.CashFlow.Surplus,
			AnnualSurplus: d.CashFlow.AnnualSurplus,
			Ratio:         d.CashFlow.Ratio,
			Band:          string(d.CashFlow.Band),
		},
		Snapshot: state.Snapshot(),
	}

	if state.Variant == scenario.VariantBudget {
		response.OutOfPocket = &outOfPocketRow{
			CashToClose:        d.OutOfPocket.CashToClose,
			RenovationSubtotal: d.OutOfPocket.Renovation.Subtotal,
			Contingency:        d.OutOfPocket.Renovation.Contingency,
			Total:              d.OutOfPocket.Total,
		}
		return response
	}

	response.Loans = &loanPayload{
		Count:          d.Loans.Count,
		TotalDebt:      d.Loans.TotalDebt,
		TotalMonthly:   d.Loans.TotalMonthly,
		AverageRatePct: d.Loans.AverageRatePct,
	}
	response.Investments = &investmentPayload{
		TotalValue:     d.Investments.TotalValue,
		BlendedCAGRPct: d.Investments.BlendedCAGRPct,
	}
	rows := make([]projectionRow, 0, len(d.Projection))
	for _, row := range d.Projection {
		out := projectionRow{
			Years:       row.Years,
			HomeValue:   row.HomeValue,
			Equity:      row.Equity,
			Investments: row.Investments,
			Debt:        row.Debt,
			NetWorth:    row.NetWorth,
		}
		if row.HasDelta {
			delta := row.Delta
			out.Change = &delta
		}
		rows = append(rows, out)
	}
	response.Projection = rows
	return response
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("scenario request failed",
		zap.String("op", op),
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
