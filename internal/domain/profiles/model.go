package profiles

import (
	"strings"
	"time"
)

// Role del usuario dentro de la app.
// @Enum fur_boss, fur_agent
type Role string

const (
	RoleFurBoss  Role = "fur_boss"
	RoleFurAgent Role = "fur_agent"
)

// ParseRole normaliza y valida un role.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleFurBoss:
		return RoleFurBoss, true
	case RoleFurAgent:
		return RoleFurAgent, true
	default:
		return "", false
	}
}

// Profile: una fila por usuario autenticado (mismo id que en el proveedor de auth).
type Profile struct {
	ID    string
	Name  string
	Email string
	Role  Role

	Phone    string
	Address  string
	Bio      string
	PhotoURL string

	// PawPoints se guarda y se expone, nadie lo incrementa todavía.
	PawPoints int

	CreatedAt time.Time
	UpdatedAt time.Time
}
