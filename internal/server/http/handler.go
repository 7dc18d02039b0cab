// Package http exposes the REST boundary: routing, request decoding,
// response shaping, and the single error-to-status mapping.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/userstorer/internal/common"
	"github.com/dmitrijs2005/userstorer/internal/server/models"
	"github.com/dmitrijs2005/userstorer/internal/server/services"
)

// AuthProvider is the slice of AuthService the handler needs.
type AuthProvider interface {
	Login(ctx context.Context, email, password string) (*services.TokenResponse, error)
}

// UserProvider is the slice of UserService the handler needs.
type UserProvider interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, cursor string, limit int32) ([]models.User, string, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	auth  AuthProvider
	users UserProvider
}

func NewHandler(auth AuthProvider, users UserProvider) *Handler {
	return &Handler{auth: auth, users: users}
}

// Routes mounts all endpoints on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.createUser)
		r.Get("/", h.listUsers)
		r.Get("/searchby/email", h.findByEmail)
		r.Get("/searchby/username", h.findByUsername)
		r.Get("/{id}", h.findByID)
		r.Delete("/{id}", h.deleteUser)
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: decoding request body: %w", common.ErrInvalidInput, err))
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, fmt.Errorf("%w: email and password are required", common.ErrInvalidInput))
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

type createUserRequest struct {
	ID       string   `json:"id,omitempty"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles,omitempty"`
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: decoding request body: %w", common.ErrInvalidInput, err))
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, fmt.Errorf("%w: email and password are required", common.ErrInvalidInput))
		return
	}

	user := &models.User{
		ID:           req.ID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: req.Password, // hashed in place by the service
		Roles:        req.Roles,
	}

	created, err := h.users.Create(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(created))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")

	var limit int32
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 32)
		if err != nil || parsed < 0 {
			writeError(w, fmt.Errorf("%w: invalid limit %q", common.ErrInvalidInput, v))
			return
		}
		limit = int32(parsed)
	}

	page, next, err := h.users.List(r.Context(), cursor, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := UserPageResponse{Users: make([]UserResponse, 0, len(page)), NextCursor: next}
	for i := range page {
		resp.Users = append(resp.Users, toUserResponse(&page[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) findByID(w http.ResponseWriter, r *http.Request) {
	h.writeUser(w, r, func(ctx context.Context) (*models.User, error) {
		return h.users.FindByID(ctx, chi.URLParam(r, "id"))
	})
}

func (h *Handler) findByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, fmt.Errorf("%w: email query parameter is required", common.ErrInvalidInput))
		return
	}
	h.writeUser(w, r, func(ctx context.Context) (*models.User, error) {
		return h.users.FindByEmail(ctx, email)
	})
}

func (h *Handler) findByUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeError(w, fmt.Errorf("%w: username query parameter is required", common.ErrInvalidInput))
		return
	}
	h.writeUser(w, r, func(ctx context.Context) (*models.User, error) {
		return h.users.FindByUsername(ctx, username)
	})
}

func (h *Handler) writeUser(w http.ResponseWriter, r *http.Request, find func(context.Context) (*models.User, error)) {
	user, err := find(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
