package dto

import (
	"time"

	"github.com/yukikurage/priority-focus-api/internal/models"
)

// ManagerDTO represents the signed-in manager in API responses
type ManagerDTO struct {
	ID        uint64                 `json:"id"`
	Email     string                 `json:"email"`
	Name      string                 `json:"name"`
	Settings  map[string]interface{} `json:"settings"`
	CreatedAt time.Time              `json:"created_at"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Manager   ManagerDTO `json:"manager"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// MessageResponse carries a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// ToManagerDTO converts a Manager model to ManagerDTO
func ToManagerDTO(manager models.Manager) ManagerDTO {
	settings := map[string]interface{}(manager.Settings)
	if settings == nil {
		settings = map[string]interface{}{}
	}

	return ManagerDTO{
		ID:        manager.ID,
		Email:     manager.Email,
		Name:      manager.Name,
		Settings:  settings,
		CreatedAt: manager.CreatedAt,
	}
}
