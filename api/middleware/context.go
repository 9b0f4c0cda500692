package middleware

import (
	"context"

	pkgAuth "github.com/angelmondragon/ssbcompass-backend/pkg/auth"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
)

type contextKey string

const (
	ctxPrincipalID contextKey = "principal_id"
	ctxKind        contextKey = "principal_kind"
	ctxClaims      contextKey = "access_claims"
)

func PrincipalIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxPrincipalID).(string); ok {
		return v
	}
	return ""
}

func KindFromContext(ctx context.Context) enums.PrincipalKind {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxKind).(enums.PrincipalKind); ok {
		return v
	}
	return ""
}

// ClaimsFromContext returns the verified token claims, or nil on public routes.
func ClaimsFromContext(ctx context.Context) *pkgAuth.AccessTokenClaims {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxClaims).(*pkgAuth.AccessTokenClaims); ok {
		return v
	}
	return nil
}

// WithClaims injects verified claims into the context for downstream handlers.
func WithClaims(ctx context.Context, claims *pkgAuth.AccessTokenClaims) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if claims == nil {
		return ctx
	}
	ctx = context.WithValue(ctx, ctxClaims, claims)
	ctx = context.WithValue(ctx, ctxPrincipalID, claims.PrincipalID)
	return context.WithValue(ctx, ctxKind, claims.Kind)
}
