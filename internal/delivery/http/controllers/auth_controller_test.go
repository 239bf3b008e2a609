package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetapp/internal/domain"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	signUpErr error
	loginErr  error
	updateErr error

	lastUserID string
	lastPatch  domain.ProfilePatch
}

func (f *fakeAuthService) SignUp(ctx context.Context, name, email, password string) (*domain.User, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &domain.User{ID: "u-created", Name: name, Email: email}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return "tok-123", &domain.User{ID: "u-1", Email: email}, nil
}

func (f *fakeAuthService) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error) {
	f.lastUserID = userID
	f.lastPatch = patch
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &domain.User{ID: userID}, nil
}

func TestAuthController_SignUp(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			body:       `{"name":"Ana","email":"ana@example.com","password":"secret1"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "missing fields",
			body:           `{"name":"Ana"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "required",
		},
		{
			name:           "duplicate email",
			body:           `{"name":"Ana","email":"ana@example.com","password":"secret1"}`,
			fakeErr:        domain.ErrDuplicateEmail,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger(), &fakeAuthService{signUpErr: tt.fakeErr})
			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.SignUp(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBodySubstr != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBodySubstr)
			}
			if tt.wantStatus == http.StatusCreated {
				assert.Contains(t, rr.Body.String(), "u-created")
				assert.NotContains(t, rr.Body.String(), "password")
			}
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
	}{
		{name: "success", body: `{"email":"ana@example.com","password":"secret1"}`, wantStatus: http.StatusOK},
		{name: "bad credentials", body: `{"email":"ana@example.com","password":"wrong"}`, fakeErr: domain.ErrUserNotFound, wantStatus: http.StatusUnauthorized},
		{name: "missing password", body: `{"email":"ana@example.com"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger(), &fakeAuthService{loginErr: tt.fakeErr})
			req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp struct {
				Data LoginResponse `json:"data"`
			}
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "tok-123", resp.Data.Token)
			assert.Equal(t, "Bearer", resp.Data.TokenType)
			require.NotNil(t, resp.Data.User)
			assert.Equal(t, "u-1", resp.Data.User.ID)
		})
	}
}

func TestAuthController_UpdateProfile(t *testing.T) {
	fake := &fakeAuthService{}
	ctrl := NewAuthController(testLogger(), fake)
	body := `{"name":"Ana Maria","old_password":"secret1","password":"secret2"}`
	req := httptest.NewRequest(http.MethodPut, "/users", bytes.NewBufferString(body))
	req = authed(req, "u-1")
	rr := httptest.NewRecorder()

	ctrl.UpdateProfile(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "u-1", fake.lastUserID)
	require.NotNil(t, fake.lastPatch.Name)
	assert.Equal(t, "Ana Maria", *fake.lastPatch.Name)
	require.NotNil(t, fake.lastPatch.Password)
	assert.Equal(t, "secret2", *fake.lastPatch.Password)
	assert.Nil(t, fake.lastPatch.Email)
}

func TestAuthController_UpdateProfile_Unauthenticated(t *testing.T) {
	ctrl := NewAuthController(testLogger(), &fakeAuthService{})
	req := httptest.NewRequest(http.MethodPut, "/users", bytes.NewBufferString(`{"name":"Ana"}`))
	rr := httptest.NewRecorder()

	ctrl.UpdateProfile(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
