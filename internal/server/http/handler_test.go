package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/userstorer/internal/common"
	"github.com/dmitrijs2005/userstorer/internal/server/models"
	"github.com/dmitrijs2005/userstorer/internal/server/services"
)

type fakeAuth struct {
	resp *services.TokenResponse
	err  error
}

func (f *fakeAuth) Login(context.Context, string, string) (*services.TokenResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeUsers struct {
	user *models.User
	page []models.User
	next string
	err  error

	deleteErr error
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return u, nil
}

func (f *fakeUsers) FindByID(context.Context, string) (*models.User, error) {
	return f.find()
}

func (f *fakeUsers) FindByEmail(context.Context, string) (*models.User, error) {
	return f.find()
}

func (f *fakeUsers) FindByUsername(context.Context, string) (*models.User, error) {
	return f.find()
}

func (f *fakeUsers) find() (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUsers) List(context.Context, string, int32) ([]models.User, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.page, f.next, nil
}

func (f *fakeUsers) Delete(context.Context, string) error {
	return f.deleteErr
}

func newTestRouter(auth AuthProvider, users UserProvider) http.Handler {
	r := chi.NewRouter()
	NewHandler(auth, users).Routes(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestHandler_Login_Success(t *testing.T) {
	h := newTestRouter(&fakeAuth{resp: &services.TokenResponse{
		AccessToken: "token-abc",
		TokenType:   "Bearer",
		ExpiresIn:   900,
	}}, &fakeUsers{})

	w := doRequest(t, h, http.MethodPost, "/login", `{"email":"a@b.c","password":"p"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp services.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "token-abc", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.EqualValues(t, 900, resp.ExpiresIn)
}

func TestHandler_Login_InvalidCredentials(t *testing.T) {
	h := newTestRouter(&fakeAuth{err: common.ErrInvalidCredentials}, &fakeUsers{})

	w := doRequest(t, h, http.MethodPost, "/login", `{"email":"a@b.c","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusUnauthorized, resp.ErrorCode)
	assert.Equal(t, "Invalid credentials", resp.ErrorMessage)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestHandler_Login_MissingFields(t *testing.T) {
	h := newTestRouter(&fakeAuth{}, &fakeUsers{})

	w := doRequest(t, h, http.MethodPost, "/login", `{"email":"a@b.c"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateUser_Success(t *testing.T) {
	h := newTestRouter(&fakeAuth{}, &fakeUsers{})

	w := doRequest(t, h, http.MethodPost, "/users/",
		`{"username":"tester","email":"a@b.c","password":"secretpass"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.NotContains(t, w.Body.String(), "secretpass")

	var resp UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tester", resp.Username)
}

func TestHandler_CreateUser_Duplicate(t *testing.T) {
	h := newTestRouter(&fakeAuth{}, &fakeUsers{err: common.ErrAlreadyExists})

	w := doRequest(t, h, http.MethodPost, "/users/",
		`{"username":"tester","email":"a@b.c","password":"p"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_FindByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h := newTestRouter(&fakeAuth{}, &fakeUsers{user: &models.User{ID: "id-1", Username: "tester", Email: "a@b.c"}})
		w := doRequest(t, h, http.MethodGet, "/users/id-1", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "id-1", resp.ID)
	})

	t.Run("missing", func(t *testing.T) {
		h := newTestRouter(&fakeAuth{}, &fakeUsers{err: common.ErrNotFound})
		w := doRequest(t, h, http.MethodGet, "/users/ghost", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_SearchBy_RequiresParam(t *testing.T) {
	h := newTestRouter(&fakeAuth{}, &fakeUsers{})

	w := doRequest(t, h, http.MethodGet, "/users/searchby/email", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, h, http.MethodGet, "/users/searchby/username", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_SearchByEmail(t *testing.T) {
	h := newTestRouter(&fakeAuth{}, &fakeUsers{user: &models.User{ID: "id-1", Email: "a@b.c"}})

	w := doRequest(t, h, http.MethodGet, "/users/searchby/email?email=a@b.c", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_ListUsers_PageAndCursor(t *testing.T) {
	h := newTestRouter(&fakeAuth{}, &fakeUsers{
		page: []models.User{{ID: "id-1", Email: "a@b.c"}, {ID: "id-2", Email: "b@b.c"}},
		next: "id-2",
	})

	w := doRequest(t, h, http.MethodGet, "/users/?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp UserPageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Users, 2)
	assert.Equal(t, "id-2", resp.NextCursor)
}

func TestHandler_ListUsers_InvalidLimit(t *testing.T) {
	h := newTestRouter(&fakeAuth{}, &fakeUsers{})

	w := doRequest(t, h, http.MethodGet, "/users/?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_DeleteUser(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		h := newTestRouter(&fakeAuth{}, &fakeUsers{})
		w := doRequest(t, h, http.MethodDelete, "/users/id-1", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("missing", func(t *testing.T) {
		h := newTestRouter(&fakeAuth{}, &fakeUsers{deleteErr: common.ErrNotFound})
		w := doRequest(t, h, http.MethodDelete, "/users/ghost", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
