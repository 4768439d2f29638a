package dto

import (
	"time"

	"learnhub_backend/internals/features/users/model"
)

/* ===========================
   Requests
=========================== */

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=STUDENT INSTRUCTOR ADMIN"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

/* ===========================
   Responses
=========================== */

type UserResponse struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func ToUserResponse(u model.UserModel) UserResponse {
	return UserResponse{
		UserID:    u.UserID.String(),
		Name:      u.UserName,
		Email:     u.UserEmail,
		Role:      u.UserRole,
		CreatedAt: u.UserCreatedAt,
	}
}
