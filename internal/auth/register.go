package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/ssbcompass-backend/internal/learners"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
	"github.com/angelmondragon/ssbcompass-backend/pkg/validate"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const duplicateIdentityMessage = "email already registered"

// RegisterLearner stores a new learner with a hashed password. The email match
// is exact, so addresses differing only in case are distinct identities.
func (s *service) RegisterLearner(ctx context.Context, req RegisterRequest) (*learners.LearnerDTO, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validate.Struct(&req); err != nil {
		return nil, err
	}

	if _, err := s.learners.FindByEmail(ctx, req.Email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDuplicateIdentity, duplicateIdentityMessage)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check learner email")
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	learner, err := s.learners.Create(ctx, learners.CreateLearnerDTO{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateIdentity, duplicateIdentityMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create learner")
	}
	return learners.FromModel(learner, nil), nil
}

// Register signs the learner up and issues a token in one step.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	user, err := s.RegisterLearner(ctx, req)
	if err != nil {
		return nil, err
	}
	token, err := s.mint(user.ID, enums.PrincipalKindLearner)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{AccessToken: token, User: user}, nil
}
