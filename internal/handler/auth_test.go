package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movienight/internal/model"
	"github.com/iliyamo/movienight/internal/service"
	"github.com/iliyamo/movienight/internal/utils"
)

func TestAuthHandler_Signup(t *testing.T) {
	m := new(mockAuth)
	in := service.SignupInput{Username: "alice", Email: "a@x.io", Password: "pw"}
	m.On("Signup", mock.Anything, in).Return(model.UserPublic{ID: 1, Username: "alice", Email: "a@x.io"}, nil)

	c, rec := newCtx(http.MethodPost, "/api/signup", `{"username":"alice","email":"a@x.io","password":"pw"}`, 0)
	require.NoError(t, NewAuthHandler(m).Signup(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, map[string]any{"id": float64(1), "username": "alice", "email": "a@x.io"}, decode(t, rec))
}

func TestAuthHandler_SignupErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"duplicate", service.ErrUserExists, http.StatusConflict},
		{"validation", &service.ValidationError{Msg: "Missing fields"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := new(mockAuth)
			m.On("Signup", mock.Anything, mock.Anything).Return(model.UserPublic{}, tc.err)

			c, rec := newCtx(http.MethodPost, "/api/signup", `{"username":"alice"}`, 0)
			require.NoError(t, NewAuthHandler(m).Signup(c))

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.err.Error(), decode(t, rec)["error"])
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	m := new(mockAuth)
	m.On("Login", mock.Anything, "alice", "pw").Return(utils.AccessToken{Token: "tok", Exp: time.Now().Add(time.Hour)}, nil)
	m.On("Login", mock.Anything, "alice", "bad").Return(utils.AccessToken{}, service.ErrInvalidCredentials)
	h := NewAuthHandler(m)

	c, rec := newCtx(http.MethodPost, "/api/login", `{"username":"alice","password":"pw"}`, 0)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"token": "tok"}, decode(t, rec))

	c, rec = newCtx(http.MethodPost, "/api/login", `{"username":"alice","password":"bad"}`, 0)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decode(t, rec)["error"])
}

func TestAuthHandler_Validate(t *testing.T) {
	c, rec := newCtx(http.MethodGet, "/api/validate", "", 7)
	require.NoError(t, NewAuthHandler(new(mockAuth)).Validate(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"id": float64(7), "username": "alice"}, decode(t, rec)["user"])
}

func TestAuthHandler_ListUsers(t *testing.T) {
	m := new(mockAuth)
	m.On("ListUsers", mock.Anything).Return([]model.UserPublic{{ID: 2}, {ID: 1}}, nil)

	c, rec := newCtx(http.MethodGet, "/api/users", "", 0)
	require.NoError(t, NewAuthHandler(m).ListUsers(c))

	body := decode(t, rec)
	assert.EqualValues(t, 2, body["count"])
	assert.Len(t, body["users"], 2)
}
