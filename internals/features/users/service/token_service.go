package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"learnhub_backend/internals/configs"
	"learnhub_backend/internals/features/users/model"
)

const tokenLifetime = 7 * 24 * time.Hour

// CreateToken issues the session JWT carrying the user's id and role.
func CreateToken(user model.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   user.UserID.String(),
		"user_name": user.UserName,
		"user_role": user.UserRole,
		"exp":       time.Now().Add(tokenLifetime).Unix(),
		"iat":       time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

func TokenLifetime() time.Duration { return tokenLifetime }
