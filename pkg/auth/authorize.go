package auth

import (
	"fmt"

	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
)

// Authorize is the single gate for kind-restricted operations.
func Authorize(claims *AccessTokenClaims, required enums.PrincipalKind) error {
	if claims == nil {
		return pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
	}
	if claims.Kind != required {
		return pkgerrors.New(pkgerrors.CodeForbidden, fmt.Sprintf("%s access required", required))
	}
	return nil
}
