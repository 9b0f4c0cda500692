package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/ssbcompass-backend/internal/admins"
	"github.com/angelmondragon/ssbcompass-backend/internal/auth"
	"github.com/angelmondragon/ssbcompass-backend/internal/learners"
	pkgAuth "github.com/angelmondragon/ssbcompass-backend/pkg/auth"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
)

type stubAuthService struct {
	registered *auth.LoginResponse
	login      *auth.LoginResponse
	admin      *auth.AdminLoginResponse
	profile    *auth.Profile
	err        error

	gotRegister auth.RegisterRequest
	gotAdmin    auth.AdminLoginRequest
	gotClaims   *pkgAuth.AccessTokenClaims
}

func (s *stubAuthService) RegisterLearner(ctx context.Context, req auth.RegisterRequest) (*learners.LearnerDTO, error) {
	return nil, s.err
}

func (s *stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.LoginResponse, error) {
	s.gotRegister = req
	return s.registered, s.err
}

func (s *stubAuthService) Authenticate(ctx context.Context, identifier, password string, kind enums.PrincipalKind) (*auth.Principal, error) {
	return nil, s.err
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.login, s.err
}

func (s *stubAuthService) AdminLogin(ctx context.Context, req auth.AdminLoginRequest) (*auth.AdminLoginResponse, error) {
	s.gotAdmin = req
	return s.admin, s.err
}

func (s *stubAuthService) Verify(ctx context.Context, claims *pkgAuth.AccessTokenClaims) (*auth.Profile, error) {
	s.gotClaims = claims
	return s.profile, s.err
}

func TestAuthRegisterCreatesLearner(t *testing.T) {
	svc := &stubAuthService{registered: &auth.LoginResponse{
		AccessToken: "token",
		User:        &learners.LearnerDTO{ID: "l-1", Email: "rahul@example.com", Courses: []string{}},
	}}

	body := `{"name":"  Rahul  ","email":"rahul@example.com","password":"secret1","phone":"9876543210"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	AuthRegister(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	var resp auth.LoginResponse
	decodeData(t, rec, &resp)
	if resp.AccessToken != "token" || resp.User == nil || resp.User.ID != "l-1" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if svc.gotRegister.Name != "Rahul" {
		t.Fatalf("expected sanitized name, got %q", svc.gotRegister.Name)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must not echo credentials: %s", rec.Body.String())
	}
}

func TestAuthRegisterValidatesBody(t *testing.T) {
	svc := &stubAuthService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"name":"R","email":"not-an-email","password":"123"}`))
	rec := httptest.NewRecorder()
	AuthRegister(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	apiErr := decodeError(t, rec)
	if apiErr.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", apiErr.Code)
	}
	for _, field := range []string{"email", "password"} {
		if _, ok := apiErr.Details[field]; !ok {
			t.Fatalf("expected details for %s, got %v", field, apiErr.Details)
		}
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeDuplicateIdentity, "learner exists")}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"name":"R","email":"r@example.com","password":"secret1"}`))
	rec := httptest.NewRecorder()
	AuthRegister(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
	if msg := decodeError(t, rec).Message; msg != "email already registered" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthLoginFailuresShareMessage(t *testing.T) {
	for _, code := range []pkgerrors.Code{pkgerrors.CodeInvalidCredentials, pkgerrors.CodeInvalidToken, pkgerrors.CodeExpiredToken} {
		svc := &stubAuthService{err: pkgerrors.New(code, "internal reason")}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"x@example.com","password":"nope"}`))
		rec := httptest.NewRecorder()
		AuthLogin(svc, nil).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 got %d", code, rec.Code)
		}
		if msg := decodeError(t, rec).Message; msg != "invalid credentials" {
			t.Fatalf("%s: unexpected message %q", code, msg)
		}
	}
}

func TestAdminAuthLoginUsesAdminID(t *testing.T) {
	svc := &stubAuthService{admin: &auth.AdminLoginResponse{
		AccessToken: "admin-token",
		Admin:       &admins.AdminDTO{AdminID: "ADMIN123"},
	}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/admin-login", strings.NewReader(`{"admin_id":"ADMIN123","password":"admin123"}`))
	rec := httptest.NewRecorder()
	AdminAuthLogin(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotAdmin.AdminID != "ADMIN123" {
		t.Fatalf("expected admin id forwarded, got %q", svc.gotAdmin.AdminID)
	}
}

func TestAuthVerifyRequiresClaims(t *testing.T) {
	rec := httptest.NewRecorder()
	AuthVerify(&stubAuthService{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthVerifyReturnsProfile(t *testing.T) {
	svc := &stubAuthService{profile: &auth.Profile{
		Kind: enums.PrincipalKindLearner,
		User: &learners.LearnerDTO{ID: "l-1", Courses: []string{"TAT"}},
	}}
	req := withPrincipal(httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify", nil), "l-1", enums.PrincipalKindLearner)
	rec := httptest.NewRecorder()
	AuthVerify(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.gotClaims == nil || svc.gotClaims.PrincipalID != "l-1" {
		t.Fatalf("expected claims forwarded, got %+v", svc.gotClaims)
	}
	var profile auth.Profile
	decodeData(t, rec, &profile)
	if profile.User == nil || len(profile.User.Courses) != 1 || profile.User.Courses[0] != "TAT" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestAuthHandlersRequireService(t *testing.T) {
	handlers := []http.HandlerFunc{AuthRegister(nil, nil), AuthLogin(nil, nil), AdminAuthLogin(nil, nil), AuthVerify(nil, nil)}
	for _, h := range handlers {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500 got %d", rec.Code)
		}
	}
}
