package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userstorer/internal/common"
	"github.com/dmitrijs2005/userstorer/internal/server/models"
)

// UserResponse is the outward user representation. The password hash is
// never part of it.
type UserResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Roles     []string   `json:"roles,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	Created   *time.Time `json:"created,omitempty"`
	Modified  *time.Time `json:"modified,omitempty"`
}

// UserPageResponse is one page of a cursor-based listing. NextCursor is ""
// when the table is exhausted.
type UserPageResponse struct {
	Users      []UserResponse `json:"users"`
	NextCursor string         `json:"nextCursor,omitempty"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	ErrorCode    int       `json:"errorCode"`
	ErrorMessage string    `json:"errorMessage"`
	Details      string    `json:"details,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Roles:     u.Roles,
		LastLogin: optionalTime(u.LastLogin),
		Created:   optionalTime(u.Created),
		Modified:  optionalTime(u.Modified),
	}
}

func optionalTime(m models.Millis) *time.Time {
	if m.IsZero() {
		return nil
	}
	t := m.Time
	return &t
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError is the single place where error kinds become HTTP statuses.
// Handlers never pick status codes themselves.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal error"

	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid credentials"
	case errors.Is(err, common.ErrAlreadyExists):
		status = http.StatusConflict
		message = "Already exists"
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
		message = "Not found"
	case errors.Is(err, common.ErrInvalidInput):
		status = http.StatusBadRequest
		message = "Invalid input"
	}

	writeJSON(w, status, ErrorResponse{
		ErrorCode:    status,
		ErrorMessage: message,
		Details:      err.Error(),
		Timestamp:    time.Now().UTC(),
	})
}
