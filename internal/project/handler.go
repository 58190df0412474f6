package project

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/user-administration/internal/transport"
	"github.com/frahmantamala/user-administration/pkg/logger"
)

type ServiceAPI interface {
	GetAllProjects() ([]Project, error)
	ToggleSelection(dto ToggleSelectionDTO) (*SelectionResponse, error)
	SelectAll(dto SelectAllDTO) (*SelectionResponse, error)
	Summary(dto SummaryDTO) (*SelectionResponse, error)
	Tree(expandedIDs, selectedIDs []string) (*TreeResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// GetProjects handles GET /projects
func (h *Handler) GetProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.GetAllProjects()
	if err != nil {
		h.Logger.Error("GetProjects: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ProjectsResponse{Projects: projects})
}

// GetTree handles GET /projects/tree?expanded=a,b&selected=c,d
func (h *Handler) GetTree(w http.ResponseWriter, r *http.Request) {
	expanded := splitIDs(r.URL.Query().Get("expanded"))
	selected := splitIDs(r.URL.Query().Get("selected"))

	tree, err := h.Service.Tree(expanded, selected)
	if err != nil {
		h.Logger.Error("GetTree: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tree)
}

// ToggleSelection handles POST /projects/selection/toggle
func (h *Handler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	var dto ToggleSelectionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ToggleSelection: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if dto.ProjectID == "" {
		h.WriteError(w, http.StatusBadRequest, "project_id is required")
		return
	}

	resp, err := h.Service.ToggleSelection(dto)
	if err != nil {
		h.Logger.Error("ToggleSelection: service error", "error", err, "project_id", dto.ProjectID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// SelectAll handles POST /projects/selection/all
func (h *Handler) SelectAll(w http.ResponseWriter, r *http.Request) {
	var dto SelectAllDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SelectAll: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.SelectAll(dto)
	if err != nil {
		h.Logger.Error("SelectAll: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// Summary handles POST /projects/selection/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	var dto SummaryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Summary: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Summary(dto)
	if err != nil {
		h.Logger.Error("Summary: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
