package dto

import (
	"time"

	"github.com/silverstage/silverstage-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID                   uint64            `json:"id"`
	Name                 string            `json:"name"`
	Email                string            `json:"email"`
	Role                 models.Role       `json:"role"`
	Status               models.UserStatus `json:"status"`
	OnboardingStepsDone  int               `json:"onboarding_steps_done"`
	OnboardingStepsTotal int               `json:"onboarding_steps_total"`
	LastLoginAt          *time.Time        `json:"last_login_at,omitempty"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users []UserDTO `json:"users"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Total int64     `json:"total"`
}

// LoginResponse carries the authenticated user plus a bearer token for
// non-browser clients.
type LoginResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:                   user.ID,
		Name:                 user.Name,
		Email:                user.Email,
		Role:                 user.Role,
		Status:               user.Status,
		OnboardingStepsDone:  user.OnboardingStepsDone,
		OnboardingStepsTotal: user.OnboardingStepsTotal,
		LastLoginAt:          user.LastLoginAt,
	}
}

// ToUserListResponse converts a slice of users to UserListResponse
func ToUserListResponse(users []models.User, page, limit int, total int64) UserListResponse {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}
	return UserListResponse{
		Users: items,
		Page:  page,
		Limit: limit,
		Total: total,
	}
}
