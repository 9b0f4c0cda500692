package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/internal/admins"
	"github.com/angelmondragon/ssbcompass-backend/internal/learners"
	pkgAuth "github.com/angelmondragon/ssbcompass-backend/pkg/auth"
	"github.com/angelmondragon/ssbcompass-backend/pkg/config"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	RegisterLearner(ctx context.Context, req RegisterRequest) (*learners.LearnerDTO, error)
	Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error)
	Authenticate(ctx context.Context, identifier, password string, kind enums.PrincipalKind) (*Principal, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	AdminLogin(ctx context.Context, req AdminLoginRequest) (*AdminLoginResponse, error)
	Verify(ctx context.Context, claims *pkgAuth.AccessTokenClaims) (*Profile, error)
}

type learnerRepository interface {
	Create(ctx context.Context, dto learners.CreateLearnerDTO) (*models.Learner, error)
	FindByEmail(ctx context.Context, email string) (*models.Learner, error)
	FindByID(ctx context.Context, id string) (*models.Learner, error)
}

type adminRepository interface {
	FindByAdminID(ctx context.Context, adminID string) (*models.Admin, error)
	UpdateLastLogin(ctx context.Context, adminID string, at time.Time) error
}

type entitlementReader interface {
	Entitlements(ctx context.Context, learnerID string) ([]string, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
	VerifyDummy(password string)
}

type loginRecorder interface {
	LoginAttempted(kind string, err error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Learners  learnerRepository
	Admins    adminRepository
	Ledger    entitlementReader
	Hasher    passwordHasher
	JWTConfig config.JWTConfig
	Clock     func() time.Time
	Metrics   loginRecorder
}

type service struct {
	learners learnerRepository
	admins   adminRepository
	ledger   entitlementReader
	hasher   passwordHasher
	jwtCfg   config.JWTConfig
	now      func() time.Time
	metrics  loginRecorder
}

// NewService constructs the credential service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Learners == nil {
		return nil, fmt.Errorf("learner repository is required")
	}
	if params.Admins == nil {
		return nil, fmt.Errorf("admin repository is required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("entitlement reader is required")
	}
	if params.Hasher == nil {
		return nil, fmt.Errorf("password hasher is required")
	}
	if strings.TrimSpace(params.JWTConfig.Secret) == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		learners: params.Learners,
		admins:   params.Admins,
		ledger:   params.Ledger,
		hasher:   params.Hasher,
		jwtCfg:   params.JWTConfig,
		now:      clock,
		metrics:  params.Metrics,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (resp *LoginResponse, err error) {
	defer s.recordAttempt(enums.PrincipalKindLearner, &err)

	learner, err := s.authenticateLearner(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	courses, err := s.ledger.Entitlements(ctx, learner.ID)
	if err != nil {
		return nil, err
	}
	token, err := s.mint(learner.ID, enums.PrincipalKindLearner)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		AccessToken: token,
		User:        learners.FromModel(learner, courses),
	}, nil
}

func (s *service) AdminLogin(ctx context.Context, req AdminLoginRequest) (resp *AdminLoginResponse, err error) {
	defer s.recordAttempt(enums.PrincipalKindAdmin, &err)

	admin, err := s.authenticateAdmin(ctx, req.AdminID, req.Password)
	if err != nil {
		return nil, err
	}
	if err := s.recordLogin(ctx, admin); err != nil {
		return nil, err
	}
	token, err := s.mint(admin.ID, enums.PrincipalKindAdmin)
	if err != nil {
		return nil, err
	}
	return &AdminLoginResponse{
		AccessToken: token,
		Admin:       admins.FromModel(admin),
	}, nil
}

func (s *service) Authenticate(ctx context.Context, identifier, password string, kind enums.PrincipalKind) (*Principal, error) {
	switch kind {
	case enums.PrincipalKindLearner:
		learner, err := s.authenticateLearner(ctx, identifier, password)
		if err != nil {
			return nil, err
		}
		return &Principal{ID: learner.ID, Kind: kind}, nil
	case enums.PrincipalKindAdmin:
		admin, err := s.authenticateAdmin(ctx, identifier, password)
		if err != nil {
			return nil, err
		}
		return &Principal{ID: admin.ID, Kind: kind}, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown principal kind")
	}
}

// Verify resolves the claims back to a live principal. A principal that no
// longer exists or was deactivated is reported as an invalid token.
func (s *service) Verify(ctx context.Context, claims *pkgAuth.AccessTokenClaims) (*Profile, error) {
	if claims == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidToken, invalidCredentialsMessage)
	}
	switch claims.Kind {
	case enums.PrincipalKindLearner:
		learner, err := s.learners.FindByID(ctx, claims.PrincipalID)
		if err != nil {
			return nil, lookupError(err, "lookup learner", pkgerrors.CodeInvalidToken)
		}
		if !learner.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidToken, invalidCredentialsMessage)
		}
		courses, err := s.ledger.Entitlements(ctx, learner.ID)
		if err != nil {
			return nil, err
		}
		return &Profile{Kind: claims.Kind, User: learners.FromModel(learner, courses)}, nil
	case enums.PrincipalKindAdmin:
		admin, err := s.admins.FindByAdminID(ctx, claims.PrincipalID)
		if err != nil {
			return nil, lookupError(err, "lookup admin", pkgerrors.CodeInvalidToken)
		}
		if !admin.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidToken, invalidCredentialsMessage)
		}
		return &Profile{Kind: claims.Kind, Admin: admins.FromModel(admin)}, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeInvalidToken, invalidCredentialsMessage)
	}
}

func (s *service) authenticateLearner(ctx context.Context, email, password string) (*models.Learner, error) {
	input := strings.TrimSpace(email)
	if input == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
	}
	learner, err := s.learners.FindByEmail(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.VerifyDummy(password)
		}
		return nil, lookupError(err, "lookup learner", pkgerrors.CodeInvalidCredentials)
	}
	if err := s.checkPassword(password, learner.PasswordHash, learner.IsActive); err != nil {
		return nil, err
	}
	return learner, nil
}

func (s *service) authenticateAdmin(ctx context.Context, adminID, password string) (*models.Admin, error) {
	input := strings.TrimSpace(adminID)
	if input == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
	}
	admin, err := s.admins.FindByAdminID(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.VerifyDummy(password)
		}
		return nil, lookupError(err, "lookup admin", pkgerrors.CodeInvalidCredentials)
	}
	if err := s.checkPassword(password, admin.PasswordHash, admin.IsActive); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *service) checkPassword(password, encoded string, active bool) error {
	valid, err := s.hasher.Verify(password, encoded)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !active {
		return pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
	}
	return nil
}

func (s *service) recordLogin(ctx context.Context, admin *models.Admin) error {
	now := s.now().UTC()
	if err := s.admins.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	admin.LastLoginAt = &now
	return nil
}

func (s *service) mint(principalID string, kind enums.PrincipalKind) (string, error) {
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, s.now(), pkgAuth.AccessTokenPayload{
		PrincipalID: principalID,
		Kind:        kind,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return token, nil
}

func (s *service) recordAttempt(kind enums.PrincipalKind, err *error) {
	if s.metrics != nil {
		s.metrics.LoginAttempted(kind.String(), *err)
	}
}

func lookupError(err error, op string, missing pkgerrors.Code) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(missing, invalidCredentialsMessage)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op)
}
