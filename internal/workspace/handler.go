package workspace

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/closetrack/api-crm/internal/auth"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type saveWorkspaceRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type addMemberRequest struct {
	UserID uint   `json:"userId" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=admin agent"`
}

// Handler serves workspace administration routes.
type Handler struct {
	Repo     *Repository
	validate *validator.Validate
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo, validate: validator.New()}
}

// RequireMember wraps a workspace-scoped route, rejecting callers with
// no membership. Account-level admins pass regardless.
func (h *Handler) RequireMember(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wid, err := strconv.Atoi(mux.Vars(r)["wid"])
		if err != nil {
			http.Error(w, "invalid workspace id", http.StatusBadRequest)
			return
		}
		if isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool); isAdmin {
			next(w, r)
			return
		}
		userID, _ := r.Context().Value(auth.CtxUserID).(uint)
		if h.Repo.RoleOf(uint(wid), userID) == "" {
			http.Error(w, "not a workspace member", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// RequireWorkspaceAdmin wraps routes reserved for workspace admins.
func (h *Handler) RequireWorkspaceAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wid, err := strconv.Atoi(mux.Vars(r)["wid"])
		if err != nil {
			http.Error(w, "invalid workspace id", http.StatusBadRequest)
			return
		}
		if isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool); isAdmin {
			next(w, r)
			return
		}
		userID, _ := r.Context().Value(auth.CtxUserID).(uint)
		if h.Repo.RoleOf(uint(wid), userID) != RoleAdmin {
			http.Error(w, "forbidden (workspace admin only)", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// Create handles POST /workspaces. The caller becomes the owner and
// first admin, and the default pipeline is seeded.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req saveWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	ws := Workspace{Name: req.Name, OwnerID: userID}
	if err := h.Repo.Create(&ws); err != nil {
		http.Error(w, "could not create workspace", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ws)
}

// List handles GET /workspaces, scoped to the caller's memberships.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	list, err := h.Repo.ListForUser(userID)
	if err != nil {
		http.Error(w, "could not list workspaces", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get handles GET /workspaces/{wid}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	wid, err := strconv.Atoi(mux.Vars(r)["wid"])
	if err != nil {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}

	ws, err := h.Repo.FindByID(uint(wid))
	if err != nil {
		http.Error(w, "workspace not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ws)
}

// Update handles PUT /workspaces/{wid}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	wid, err := strconv.Atoi(mux.Vars(r)["wid"])
	if err != nil {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}

	ws, err := h.Repo.FindByID(uint(wid))
	if err != nil {
		http.Error(w, "workspace not found", http.StatusNotFound)
		return
	}

	var req saveWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ws.Name = req.Name
	ws.Members = nil
	if err := h.Repo.Update(ws); err != nil {
		http.Error(w, "could not update workspace", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ws)
}

// AddMember handles POST /workspaces/{wid}/members.
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	wid, err := strconv.Atoi(mux.Vars(r)["wid"])
	if err != nil {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m := Membership{WorkspaceID: uint(wid), UserID: req.UserID, Role: req.Role}
	if err := h.Repo.AddMember(&m); err != nil {
		http.Error(w, "could not add member", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m)
}

// ListMembers handles GET /workspaces/{wid}/members.
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	wid, err := strconv.Atoi(mux.Vars(r)["wid"])
	if err != nil {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}

	list, err := h.Repo.ListMembers(uint(wid))
	if err != nil {
		http.Error(w, "could not list members", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// RemoveMember handles DELETE /workspaces/{wid}/members/{uid}.
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	wid, err := strconv.Atoi(vars["wid"])
	if err != nil {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}
	uid, err := strconv.Atoi(vars["uid"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.RemoveMember(uint(wid), uint(uid)); err != nil {
		http.Error(w, "could not remove member", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
