package employee

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/user-administration/internal/transport"
	"github.com/frahmantamala/user-administration/pkg/logger"
)

func parseOptionalID(raw string) int64 {
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

type ServiceAPI interface {
	GetAllEmployees() ([]Employee, error)
	FindByEmpID(empID string) (*Employee, error)
}

// LookupChecker answers whether an employee id is already bound to an
// account other than the one being edited. Implemented by the user service.
type LookupChecker interface {
	EmpIDClaimedBy(empID string, excludeUserID int64) (bool, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Checker LookupChecker
}

func NewHandler(service ServiceAPI, checker LookupChecker) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		Checker:     checker,
	}
}

type EmployeesResponse struct {
	Employees []Employee `json:"employees"`
}

// LookupResponse mirrors the form's employee-field state machine: the status
// moves to valid only when the roster knows the id and no other account has
// claimed it; name and email are derived, never hand-typed.
type LookupResponse struct {
	Status   string    `json:"status"` // idle | valid | invalid
	Employee *Employee `json:"employee,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}

// GetEmployees handles GET /employees
func (h *Handler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.GetAllEmployees()
	if err != nil {
		h.Logger.Error("GetEmployees: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, EmployeesResponse{Employees: employees})
}

// Lookup handles GET /employees/lookup?emp_id=E100&exclude_user_id=3
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	empID := r.URL.Query().Get("emp_id")
	if empID == "" {
		h.WriteJSON(w, http.StatusOK, LookupResponse{Status: "idle"})
		return
	}

	excludeUserID := parseOptionalID(r.URL.Query().Get("exclude_user_id"))

	emp, err := h.Service.FindByEmpID(empID)
	if err == ErrNotFound {
		h.WriteJSON(w, http.StatusOK, LookupResponse{
			Status: "invalid",
			Reason: "enter a valid Employee ID registered in the roster",
		})
		return
	}
	if err != nil {
		h.Logger.Error("Lookup: service error", "error", err, "emp_id", empID)
		h.HandleServiceError(w, err)
		return
	}

	claimed, err := h.Checker.EmpIDClaimedBy(emp.EmpID, excludeUserID)
	if err != nil {
		h.Logger.Error("Lookup: claim check failed", "error", err, "emp_id", empID)
		h.HandleServiceError(w, err)
		return
	}
	if claimed {
		h.WriteJSON(w, http.StatusOK, LookupResponse{
			Status: "invalid",
			Reason: "account already exists for this Employee ID",
		})
		return
	}

	h.WriteJSON(w, http.StatusOK, LookupResponse{
		Status:   "valid",
		Employee: emp,
	})
}
