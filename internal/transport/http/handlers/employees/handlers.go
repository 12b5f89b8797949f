package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/employee"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
	Store   *employee.Store
}

func NewHandler(service *employee.Service, store *employee.Store) *Handler {
	return &Handler{Service: service, Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/register", h.handleRegister)
		r.With(middleware.RequireAuth).Get("/", h.handleList)
		r.With(middleware.RequireAuth).Get("/{empID}", h.handleGet)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Put("/{empID}", h.handleUpdate)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{empID}", h.handleDeactivate)
	})
}

type registerRequest struct {
	CompanyCode   string `json:"companyCode"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	Department    string `json:"department"`
	ManagerID     string `json:"managerId"`
	Location      string `json:"location"`
	DateOfJoining string `json:"dateOfJoining"`
}

type registerResponse struct {
	Employee          *employee.Employee `json:"employee"`
	TemporaryPassword string             `json:"temporaryPassword"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("companyCode", payload.CompanyCode, "company code is required")
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("email", payload.Email, "email is required")
	if strings.TrimSpace(payload.Email) != "" {
		if _, err := mail.ParseAddress(strings.TrimSpace(payload.Email)); err != nil {
			v.Add("email", "must be a valid email address")
		}
	}
	v.Enum("role", payload.Role, []string{auth.RoleEmployee, auth.RoleHR, auth.RoleAdmin}, "must be one of employee, hr, admin")
	v.Required("dateOfJoining", payload.DateOfJoining, "date of joining is required")
	var dateOfJoining time.Time
	if strings.TrimSpace(payload.DateOfJoining) != "" {
		dateOfJoining, _ = v.Date("dateOfJoining", payload.DateOfJoining)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp, tempPassword, err := h.Service.RegisterEmployee(r.Context(), identity, employee.RegisterInput{
		CompanyCode:   payload.CompanyCode,
		FirstName:     strings.TrimSpace(payload.FirstName),
		LastName:      strings.TrimSpace(payload.LastName),
		Email:         payload.Email,
		Phone:         strings.TrimSpace(payload.Phone),
		Role:          strings.ToLower(strings.TrimSpace(payload.Role)),
		Department:    strings.TrimSpace(payload.Department),
		ManagerID:     strings.TrimSpace(payload.ManagerID),
		Location:      strings.TrimSpace(payload.Location),
		DateOfJoining: dateOfJoining,
	})
	if err != nil {
		h.failRegister(w, r, err)
		return
	}

	api.Created(w, registerResponse{Employee: emp, TemporaryPassword: tempPassword}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failRegister(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, employee.ErrDuplicateEmail):
		api.Fail(w, http.StatusBadRequest, "duplicate_email", "an employee with this email already exists", requestID)
	case errors.Is(err, employee.ErrManagerNotFound):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "managerId", Reason: "manager does not exist"}})
	case errors.Is(err, employee.ErrIDCapacity):
		api.Fail(w, http.StatusConflict, "id_capacity_exhausted", "no employee ids left for this name and year", requestID)
	case errors.Is(err, employee.ErrContention):
		api.Fail(w, http.StatusConflict, "contention", "could not allocate an employee id, please retry", requestID)
	case errors.Is(err, employee.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", "admin or hr role required", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to register employee", requestID)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	// Non-privileged callers see only their own record.
	if !auth.Privileged(identity.Role) {
		emp, err := h.Store.GetEmployee(r.Context(), identity.EmployeeID)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
			return
		}
		api.Success(w, []employee.Employee{*emp}, middleware.GetRequestID(r.Context()))
		return
	}

	employees, err := h.Store.ListActive(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	if employees == nil {
		employees = []employee.Employee{}
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	empID := chi.URLParam(r, "empID")
	if !auth.CanAccessEmployee(identity, empID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot access another employee's record", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), empID)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_fetch_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	empID := chi.URLParam(r, "empID")

	var payload employee.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	err := h.Store.UpdateEmployee(r.Context(), empID, payload)
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, employee.ErrManagerNotFound):
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{Field: "managerId", Reason: "manager does not exist"}})
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), empID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_fetch_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	empID := chi.URLParam(r, "empID")
	err := h.Store.Deactivate(r.Context(), empID)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_deactivate_failed", "failed to deactivate employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deactivated", "empId": empID}, middleware.GetRequestID(r.Context()))
}
