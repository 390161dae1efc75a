package pipelinestatus

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type saveStatusRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	LifecycleStage string `json:"lifecycleStage" validate:"required,oneof=new in_progress closed dead"`
	Position       int    `json:"position" validate:"gte=0"`
}

// Handler serves the pipeline status routes under a workspace.
type Handler struct {
	Repo     *Repository
	validate *validator.Validate
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo, validate: validator.New()}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	wid, err := strconv.Atoi(mux.Vars(r)["wid"])
	if err != nil {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}

	var req saveStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ps := PipelineStatus{
		WorkspaceID:    uint(wid),
		Name:           req.Name,
		LifecycleStage: req.LifecycleStage,
		Position:       req.Position,
	}
	if err := h.Repo.Create(&ps); err != nil {
		http.Error(w, "could not save pipeline status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ps)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	wid, err := strconv.Atoi(mux.Vars(r)["wid"])
	if err != nil {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}

	list, err := h.Repo.ListByWorkspace(uint(wid))
	if err != nil {
		http.Error(w, "could not list pipeline statuses", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	wid, err := strconv.Atoi(vars["wid"])
	if err != nil {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid status id", http.StatusBadRequest)
		return
	}

	ps, err := h.Repo.FindByID(uint(wid), uint(id))
	if err != nil {
		http.Error(w, "pipeline status not found", http.StatusNotFound)
		return
	}

	var req saveStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ps.Name = req.Name
	ps.LifecycleStage = req.LifecycleStage
	ps.Position = req.Position
	if err := h.Repo.Update(ps); err != nil {
		http.Error(w, "could not update pipeline status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ps)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	wid, err := strconv.Atoi(vars["wid"])
	if err != nil {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid status id", http.StatusBadRequest)
		return
	}

	ps, err := h.Repo.FindByID(uint(wid), uint(id))
	if err != nil {
		http.Error(w, "pipeline status not found", http.StatusNotFound)
		return
	}

	if err := h.Repo.Delete(ps); err != nil {
		http.Error(w, "could not delete pipeline status", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
