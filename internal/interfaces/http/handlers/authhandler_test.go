package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilig/internal/application/user/usecases"
	"bilig/internal/domain/user"
	"bilig/internal/interfaces/http/handlers/testutil"
	"bilig/internal/shared/constants"
	"bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

type mockRegisterUC struct {
	result *usecases.RegisterResult
	err    error
}

func (m *mockRegisterUC) Execute(ctx context.Context, cmd usecases.RegisterCommand) (*usecases.RegisterResult, error) {
	return m.result, m.err
}

type mockLoginUC struct {
	result  *usecases.LoginResult
	err     error
	lastCmd usecases.LoginCommand
}

func (m *mockLoginUC) Execute(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

type mockRefreshUC struct {
	result *usecases.TokenPair
	err    error
}

func (m *mockRefreshUC) Execute(ctx context.Context, refreshToken string) (*usecases.TokenPair, error) {
	return m.result, m.err
}

type mockGoogleUC struct {
	url    string
	result *usecases.LoginResult
	err    error
}

func (m *mockGoogleUC) AuthURL(state string) string { return m.url + "&state=" + state }

func (m *mockGoogleUC) Execute(ctx context.Context, code string) (*usecases.LoginResult, error) {
	return m.result, m.err
}

type mockProfileUC struct {
	result *user.User
	err    error
}

func (m *mockProfileUC) Execute(ctx context.Context, sid string) (*user.User, error) {
	return m.result, m.err
}

func discardLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testUser(t *testing.T) *user.User {
	t.Helper()
	email, err := user.NewEmail("bat@example.mn")
	require.NoError(t, err)
	hash := "$2a$10$hash"
	u, err := user.ReconstructUser(
		7, "usr_test", email, &hash, "Бат",
		user.RoleUser, user.StatusActive,
		time.Now(), time.Now(), 1,
	)
	require.NoError(t, err)
	return u
}

func testTokens() *usecases.TokenPair {
	return &usecases.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    900,
	}
}

func TestAuthHandler_Register(t *testing.T) {
	u := testUser(t)
	h := NewAuthHandler(
		&mockRegisterUC{result: &usecases.RegisterResult{User: u, Tokens: testTokens()}},
		nil, nil, nil, nil,
		discardLogger(),
	)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":    "bat@example.mn",
		"name":     "Бат",
		"password": "secret-password",
	})
	h.Register(c)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			User   UserResponse  `json:"user"`
			Tokens TokenResponse `json:"tokens"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "bat@example.mn", resp.Data.User.Email)
	assert.Equal(t, "access-token", resp.Data.Tokens.AccessToken)
}

func TestAuthHandler_RegisterRejectsShortPassword(t *testing.T) {
	h := NewAuthHandler(&mockRegisterUC{}, nil, nil, nil, nil, discardLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":    "bat@example.mn",
		"name":     "Бат",
		"password": "short",
	})
	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	loginUC := &mockLoginUC{err: errors.NewUnauthorizedError("invalid email or password")}
	h := NewAuthHandler(nil, loginUC, nil, nil, nil, discardLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "bat@example.mn",
		"password": "wrong-password",
	})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "bat@example.mn", loginUC.lastCmd.Email)
}

func TestAuthHandler_Refresh(t *testing.T) {
	h := NewAuthHandler(nil, nil, &mockRefreshUC{result: testTokens()}, nil, nil, discardLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/refresh", gin.H{
		"refresh_token": "refresh-token",
	})
	h.Refresh(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access-token", resp.Data.AccessToken)
}

func TestAuthHandler_GoogleCallbackRejectsStateMismatch(t *testing.T) {
	h := NewAuthHandler(nil, nil, nil, &mockGoogleUC{}, nil, discardLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/auth/google/callback", nil)
	testutil.SetQueryParams(c, map[string]string{"state": "forged", "code": "code-1"})
	c.Request.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "issued"})
	h.GoogleCallback(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GoogleCallback(t *testing.T) {
	u := testUser(t)
	h := NewAuthHandler(nil, nil, nil,
		&mockGoogleUC{result: &usecases.LoginResult{User: u, Tokens: testTokens()}},
		nil, discardLogger(),
	)

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/auth/google/callback", nil)
	testutil.SetQueryParams(c, map[string]string{"state": "issued", "code": "code-1"})
	c.Request.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "issued"})
	h.GoogleCallback(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Profile(t *testing.T) {
	u := testUser(t)
	h := NewAuthHandler(nil, nil, nil, nil, &mockProfileUC{result: u}, discardLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/auth/profile", nil)
	c.Set(constants.ContextKeyUserSID, u.SID())
	h.Profile(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data UserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "usr_test", resp.Data.SID)
}

func TestAuthHandler_ProfileUnauthenticated(t *testing.T) {
	h := NewAuthHandler(nil, nil, nil, nil, &mockProfileUC{}, discardLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/auth/profile", nil)
	h.Profile(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
