package note

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/closetrack/api-crm/internal/auth"
	"github.com/gorilla/mux"
)

// Handler serves the note routes.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

type createNoteRequest struct {
	Body string `json:"body"`
}

// Create handles POST /workspaces/{wid}/deals/{id}/notes. The author is
// taken from the authenticated user.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	dealID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if req.Body == "" {
		http.Error(w, "body is required", http.StatusBadRequest)
		return
	}

	authorID, _ := r.Context().Value(auth.CtxUserID).(uint)
	n := Note{Body: req.Body, DealID: uint(dealID), AuthorID: authorID}
	if err := h.Repo.Create(&n); err != nil {
		http.Error(w, "could not save note", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(n)
}

// ListByDeal handles GET /workspaces/{wid}/deals/{id}/notes.
func (h *Handler) ListByDeal(w http.ResponseWriter, r *http.Request) {
	dealID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	list, err := h.Repo.ListByDeal(uint(dealID))
	if err != nil {
		http.Error(w, "could not list notes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Update handles PUT /notes/{id}. Only the author may edit.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	n, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "note not found", http.StatusNotFound)
		return
	}

	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	if n.AuthorID != userID && !isAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if req.Body == "" {
		http.Error(w, "body is required", http.StatusBadRequest)
		return
	}

	n.Body = req.Body
	if err := h.Repo.Update(n); err != nil {
		http.Error(w, "could not update note", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(n)
}

// Delete handles DELETE /notes/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	n, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "note not found", http.StatusNotFound)
		return
	}

	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	if n.AuthorID != userID && !isAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if err := h.Repo.Delete(n); err != nil {
		http.Error(w, "could not delete note", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
