package auth

import (
	"testing"

	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
)

func TestAuthorize(t *testing.T) {
	learner := &AccessTokenClaims{PrincipalID: "l1", Kind: enums.PrincipalKindLearner}
	admin := &AccessTokenClaims{PrincipalID: "ADMIN123", Kind: enums.PrincipalKindAdmin}

	if err := Authorize(learner, enums.PrincipalKindLearner); err != nil {
		t.Fatalf("learner should pass learner gate: %v", err)
	}
	if err := Authorize(admin, enums.PrincipalKindAdmin); err != nil {
		t.Fatalf("admin should pass admin gate: %v", err)
	}

	denied := []struct {
		claims   *AccessTokenClaims
		required enums.PrincipalKind
	}{
		{learner, enums.PrincipalKindAdmin},
		{admin, enums.PrincipalKindLearner},
		{nil, enums.PrincipalKindLearner},
	}
	for _, tc := range denied {
		if err := Authorize(tc.claims, tc.required); !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
			t.Fatalf("expected forbidden for %v requiring %s, got %v", tc.claims, tc.required, err)
		}
	}
}
