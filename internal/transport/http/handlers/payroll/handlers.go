package payrollhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/payroll"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

type Handler struct {
	Store *payroll.Store
}

func NewHandler(store *payroll.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/salary/{empID}", h.handleGetSalary)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/salary", h.handleCreateSalary)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/pf/process", h.handleProcessPF)
		r.Get("/pf/{empID}", h.handleListPF)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/tax", h.handleUpsertTax)
		r.Get("/tax/{empID}", h.handleGetTax)
		r.Get("/payslip/{empID}", h.handlePayslip)
	})
}

func (h *Handler) guardRow(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return "", false
	}
	empID := chi.URLParam(r, "empID")
	if !auth.CanAccessEmployee(identity, empID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot access another employee's payroll", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return empID, true
}

func monthYear(r *http.Request) (int, int) {
	now := time.Now()
	month, year := int(now.Month()), now.Year()
	if raw := r.URL.Query().Get("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 && v <= 12 {
			month = v
		}
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			year = v
		}
	}
	return month, year
}

func (h *Handler) handleGetSalary(w http.ResponseWriter, r *http.Request) {
	empID, ok := h.guardRow(w, r)
	if !ok {
		return
	}
	salary, err := h.Store.GetActiveSalary(r.Context(), empID)
	if errors.Is(err, payroll.ErrSalaryNotFound) {
		api.Fail(w, http.StatusNotFound, "salary_not_found", "no active salary structure", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_fetch_failed", "failed to load salary structure", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, salary, middleware.GetRequestID(r.Context()))
}

type createSalaryPayload struct {
	EmpID             string  `json:"empId"`
	MonthlyWage       float64 `json:"monthlyWage"`
	WorkingDaysInWeek int     `json:"noOfWorkingDaysInWeek"`
	StandardAllowance float64 `json:"standardAllowance"`
	FixedAllowance    float64 `json:"fixedAllowance"`
	EffectiveFrom     string  `json:"effectiveFrom"`
}

func (h *Handler) handleCreateSalary(w http.ResponseWriter, r *http.Request) {
	var payload createSalaryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("empId", payload.EmpID, "employee id is required")
	if payload.MonthlyWage <= 0 {
		v.Add("monthlyWage", "must be greater than zero")
	}
	if payload.WorkingDaysInWeek < 1 || payload.WorkingDaysInWeek > 7 {
		v.Add("noOfWorkingDaysInWeek", "must be between 1 and 7")
	}
	effectiveFrom, _ := v.Date("effectiveFrom", payload.EffectiveFrom)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	salary, err := h.Store.CreateSalary(r.Context(), payroll.SalaryStructure{
		EmpID:             payload.EmpID,
		MonthlyWage:       payload.MonthlyWage,
		WorkingDaysInWeek: payload.WorkingDaysInWeek,
		StandardAllowance: payload.StandardAllowance,
		FixedAllowance:    payload.FixedAllowance,
		EffectiveFrom:     effectiveFrom,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_create_failed", "failed to create salary structure", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, salary, middleware.GetRequestID(r.Context()))
}

type processPFPayload struct {
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	PaymentDate string `json:"paymentDate"`
}

func (h *Handler) handleProcessPF(w http.ResponseWriter, r *http.Request) {
	var payload processPFPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	if payload.Month < 1 || payload.Month > 12 {
		v.Add("month", "must be between 1 and 12")
	}
	if payload.Year < 2000 {
		v.Add("year", "must be a four digit year")
	}
	paymentDate := time.Now()
	if payload.PaymentDate != "" {
		paymentDate, _ = v.Date("paymentDate", payload.PaymentDate)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	processed, err := h.Store.ProcessPF(r.Context(), payload.Month, payload.Year, paymentDate)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pf_process_failed", "failed to process pf contributions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"month": payload.Month, "year": payload.Year, "processed": processed}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPF(w http.ResponseWriter, r *http.Request) {
	empID, ok := h.guardRow(w, r)
	if !ok {
		return
	}
	page := shared.ParsePagination(r, 12, 120)
	contributions, err := h.Store.ListPF(r.Context(), empID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pf_list_failed", "failed to list pf contributions", middleware.GetRequestID(r.Context()))
		return
	}
	if contributions == nil {
		contributions = []payroll.PFContribution{}
	}
	api.Success(w, contributions, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpsertTax(w http.ResponseWriter, r *http.Request) {
	var payload payroll.TaxDeduction
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("empId", payload.EmpID, "employee id is required")
	if payload.Month < 1 || payload.Month > 12 {
		v.Add("month", "must be between 1 and 12")
	}
	if payload.Year < 2000 {
		v.Add("year", "must be a four digit year")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	tax, err := h.Store.UpsertTax(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "tax_save_failed", "failed to save tax deductions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, tax, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetTax(w http.ResponseWriter, r *http.Request) {
	empID, ok := h.guardRow(w, r)
	if !ok {
		return
	}
	month, year := monthYear(r)
	tax, err := h.Store.GetTax(r.Context(), empID, month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "tax_fetch_failed", "failed to load tax deductions", middleware.GetRequestID(r.Context()))
		return
	}
	if tax == nil {
		api.Fail(w, http.StatusNotFound, "tax_not_found", "no tax deductions for this month", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, tax, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	empID, ok := h.guardRow(w, r)
	if !ok {
		return
	}
	month, year := monthYear(r)

	slip, err := h.Store.GetPayslip(r.Context(), empID, month, year)
	if errors.Is(err, payroll.ErrSalaryNotFound) {
		api.Fail(w, http.StatusNotFound, "salary_not_found", "no active salary structure", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to assemble payslip", middleware.GetRequestID(r.Context()))
		return
	}

	pdfBytes, err := payroll.RenderPayslipPDF(*slip)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_render_failed", "failed to render payslip", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="payslip-`+empID+`-`+strconv.Itoa(year)+`-`+strconv.Itoa(month)+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}
