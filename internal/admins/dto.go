package admins

import (
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
)

// AdminDTO is the transport shape that omits the credential hash.
type AdminDTO struct {
	AdminID     string          `json:"admin_id"`
	Email       string          `json:"email"`
	FullName    string          `json:"full_name"`
	Role        enums.AdminRole `json:"role"`
	Permissions []string        `json:"permissions"`
	LastLoginAt *time.Time      `json:"last_login_at,omitempty"`
}

// CreateAdminDTO holds the data required to persist an administrator.
type CreateAdminDTO struct {
	AdminID      string
	Email        string
	FullName     string
	PasswordHash string
	Role         enums.AdminRole
	Permissions  []string
	CreatedAt    time.Time
}

func FromModel(a *models.Admin) *AdminDTO {
	if a == nil {
		return nil
	}
	permissions := append([]string{}, a.Permissions...)
	return &AdminDTO{
		AdminID:     a.ID,
		Email:       a.Email,
		FullName:    a.FullName,
		Role:        a.Role,
		Permissions: permissions,
		LastLoginAt: a.LastLoginAt,
	}
}

func (c CreateAdminDTO) ToModel() *models.Admin {
	return &models.Admin{
		ID:           c.AdminID,
		Email:        c.Email,
		FullName:     c.FullName,
		PasswordHash: c.PasswordHash,
		Role:         c.Role,
		Permissions:  append([]string{}, c.Permissions...),
		IsActive:     true,
		CreatedAt:    c.CreatedAt,
	}
}
