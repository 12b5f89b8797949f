package profilehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/profile"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

type Handler struct {
	Store *profile.Store
}

func NewHandler(store *profile.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/profile/{empID}", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/personal", h.handleGetPersonal)
		r.Put("/personal", h.handlePutPersonal)
		r.Get("/bank", h.handleGetBank)
		r.Put("/bank", h.handlePutBank)
	})
}

// ownerOrPrivileged resolves the target employee ID and enforces the row-level
// rule shared by all profile routes.
func ownerOrPrivileged(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return "", false
	}
	empID := chi.URLParam(r, "empID")
	if !auth.CanAccessEmployee(identity, empID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot access another employee's profile", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return empID, true
}

func (h *Handler) handleGetPersonal(w http.ResponseWriter, r *http.Request) {
	empID, ok := ownerOrPrivileged(w, r)
	if !ok {
		return
	}
	info, err := h.Store.GetPersonalInfo(r.Context(), empID)
	if errors.Is(err, profile.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "personal info not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "personal_info_failed", "failed to load personal info", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, info, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePutPersonal(w http.ResponseWriter, r *http.Request) {
	empID, ok := ownerOrPrivileged(w, r)
	if !ok {
		return
	}

	var payload profile.PersonalInfo
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.EmpID = empID

	if err := h.Store.UpsertPersonalInfo(r.Context(), payload); err != nil {
		api.Fail(w, http.StatusInternalServerError, "personal_info_save_failed", "failed to save personal info", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, payload, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetBank(w http.ResponseWriter, r *http.Request) {
	empID, ok := ownerOrPrivileged(w, r)
	if !ok {
		return
	}
	details, err := h.Store.GetBankDetails(r.Context(), empID)
	if errors.Is(err, profile.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "bank details not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "bank_details_failed", "failed to load bank details", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, details, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePutBank(w http.ResponseWriter, r *http.Request) {
	empID, ok := ownerOrPrivileged(w, r)
	if !ok {
		return
	}

	var payload profile.BankDetails
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.EmpID = empID

	v := shared.NewValidator()
	v.Required("accountNumber", payload.AccountNumber, "account number is required")
	v.Required("bankName", payload.BankName, "bank name is required")
	v.Required("ifscCode", payload.IFSCCode, "ifsc code is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if err := h.Store.UpsertBankDetails(r.Context(), payload); err != nil {
		api.Fail(w, http.StatusInternalServerError, "bank_details_save_failed", "failed to save bank details", middleware.GetRequestID(r.Context()))
		return
	}

	// Saved details are re-read so the caller sees the stored (decrypted) view
	// and the reset verification flag.
	details, err := h.Store.GetBankDetails(r.Context(), empID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "bank_details_failed", "failed to load bank details", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, details, middleware.GetRequestID(r.Context()))
}
