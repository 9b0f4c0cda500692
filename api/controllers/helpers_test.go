package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/ssbcompass-backend/api/middleware"
	pkgAuth "github.com/angelmondragon/ssbcompass-backend/pkg/auth"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
)

var fixedNow = time.Date(2025, 1, 22, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(req.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func withPrincipal(req *http.Request, id string, kind enums.PrincipalKind) *http.Request {
	claims := &pkgAuth.AccessTokenClaims{PrincipalID: id, Kind: kind}
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v (%s)", err, string(envelope.Data))
	}
}

type apiError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiError {
	t.Helper()
	var payload struct {
		Error apiError `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error: %v (%s)", err, rec.Body.String())
	}
	return payload.Error
}
