package timeoffhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/timeoff"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

type Handler struct {
	Store *timeoff.Store
}

func NewHandler(store *timeoff.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/timeoff", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/balance", h.handleBalance)
		r.Get("/balance/{empID}", h.handleBalanceFor)
		r.Post("/requests", h.handleCreateRequest)
		r.Get("/requests", h.handleListRequests)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/requests/{requestID}/approve", h.handleApprove)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/requests/{requestID}/reject", h.handleReject)
	})
}

type balanceResponse struct {
	EmpID                string  `json:"empId"`
	Year                 int     `json:"year"`
	PaidTimeOffTotal     float64 `json:"paidTimeOffTotal"`
	PaidTimeOffUsed      float64 `json:"paidTimeOffUsed"`
	PaidTimeOffAvailable float64 `json:"paidTimeOffAvailable"`
	SickLeaveTotal       float64 `json:"sickLeaveTotal"`
	SickLeaveUsed        float64 `json:"sickLeaveUsed"`
	SickLeaveAvailable   float64 `json:"sickLeaveAvailable"`
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	h.balance(w, r, identity.EmployeeID)
}

func (h *Handler) handleBalanceFor(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	empID := chi.URLParam(r, "empID")
	if !auth.CanAccessEmployee(identity, empID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot access another employee's balance", middleware.GetRequestID(r.Context()))
		return
	}
	h.balance(w, r, empID)
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request, empID string) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			year = v
		}
	}

	balance, err := h.Store.GetBalance(r.Context(), empID, year)
	if errors.Is(err, timeoff.ErrBalanceNotFound) {
		api.Fail(w, http.StatusNotFound, "balance_not_found", "no time off balance for this year", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "balance_fetch_failed", "failed to load balance", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, balanceResponse{
		EmpID:                balance.EmpID,
		Year:                 balance.Year,
		PaidTimeOffTotal:     balance.PaidTimeOffTotal,
		PaidTimeOffUsed:      balance.PaidTimeOffUsed,
		PaidTimeOffAvailable: balance.PaidTimeOffTotal - balance.PaidTimeOffUsed,
		SickLeaveTotal:       balance.SickLeaveTotal,
		SickLeaveUsed:        balance.SickLeaveUsed,
		SickLeaveAvailable:   balance.SickLeaveTotal - balance.SickLeaveUsed,
	}, middleware.GetRequestID(r.Context()))
}

type createRequestPayload struct {
	TimeOffType string `json:"timeOffType"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Reason      string `json:"reason"`
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload createRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	timeOffType := strings.ToLower(strings.TrimSpace(payload.TimeOffType))

	v := shared.NewValidator()
	v.Required("timeOffType", timeOffType, "time off type is required")
	if timeOffType != "" && !timeoff.ValidType(timeOffType) {
		v.Add("timeOffType", "must be one of paid_time_off, sick_leave, unpaid_leave")
	}
	start, startOK := v.Date("startDate", payload.StartDate)
	end, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	req, err := h.Store.CreateRequest(r.Context(), identity.EmployeeID, timeOffType, strings.TrimSpace(payload.Reason), start, end)
	switch {
	case errors.Is(err, timeoff.ErrInsufficientBalance):
		api.Fail(w, http.StatusBadRequest, "insufficient_balance", "not enough time off balance", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, timeoff.ErrBalanceNotFound):
		api.Fail(w, http.StatusNotFound, "balance_not_found", "no time off balance for this year", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "request_create_failed", "failed to file time off request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	var (
		requests []timeoff.Request
		err      error
	)
	if auth.Privileged(identity.Role) && r.URL.Query().Get("all") == "true" {
		requests, err = h.Store.ListAllRequests(r.Context(), page.Limit, page.Offset)
	} else {
		requests, err = h.Store.ListRequests(r.Context(), identity.EmployeeID, page.Limit, page.Offset)
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "request_list_failed", "failed to list time off requests", middleware.GetRequestID(r.Context()))
		return
	}
	if requests == nil {
		requests = []timeoff.Request{}
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

type decisionPayload struct {
	Comments string `json:"comments"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, timeoff.StatusApproved)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, timeoff.StatusRejected)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, status string) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	requestID, err := strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request_id", "request id must be numeric", middleware.GetRequestID(r.Context()))
		return
	}

	var payload decisionPayload
	if r.Body != nil {
		// Comments are optional; an empty body is fine.
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	req, err := h.Store.Decide(r.Context(), requestID, identity.EmployeeID, status, strings.TrimSpace(payload.Comments))
	switch {
	case errors.Is(err, timeoff.ErrRequestNotFound):
		api.Fail(w, http.StatusNotFound, "request_not_found", "time off request not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, timeoff.ErrAlreadyDecided):
		api.Fail(w, http.StatusConflict, "already_decided", "time off request already decided", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, timeoff.ErrBalanceNotFound):
		api.Fail(w, http.StatusConflict, "balance_not_found", "no balance row to deduct from", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "decision_failed", "failed to record decision", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}
