package auth

import (
	"github.com/angelmondragon/ssbcompass-backend/internal/admins"
	"github.com/angelmondragon/ssbcompass-backend/internal/learners"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
)

// RegisterRequest is the learner sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,min=6,max=256"`
	Phone    string `json:"phone" validate:"max=32"`
}

// LoginRequest captures the learner credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginRequest captures administrator credentials. AdminID is the login handle.
type AdminLoginRequest struct {
	AdminID  string `json:"admin_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Principal is an authenticated identity with its credential namespace.
type Principal struct {
	ID   string
	Kind enums.PrincipalKind
}

// LoginResponse contains the access token and learner profile produced by a learner login or sign-up.
type LoginResponse struct {
	AccessToken string               `json:"access_token"`
	User        *learners.LearnerDTO `json:"user"`
}

// AdminLoginResponse mirrors LoginResponse while exposing the admin profile.
type AdminLoginResponse struct {
	AccessToken string           `json:"access_token"`
	Admin       *admins.AdminDTO `json:"admin"`
}

// Profile is the verify-token payload. Exactly one of User or Admin is set.
type Profile struct {
	Kind  enums.PrincipalKind  `json:"kind"`
	User  *learners.LearnerDTO `json:"user,omitempty"`
	Admin *admins.AdminDTO     `json:"admin,omitempty"`
}
