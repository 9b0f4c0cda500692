package auth

import (
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	PrincipalID string
	Kind        enums.PrincipalKind
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	PrincipalID string              `json:"principal_id"`
	Kind        enums.PrincipalKind `json:"kind"`
	jwt.RegisteredClaims
}
