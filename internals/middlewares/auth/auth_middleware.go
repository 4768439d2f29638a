package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"learnhub_backend/internals/configs"
	helper "learnhub_backend/internals/helpers"
)

// AuthMiddleware verifies the bearer token (Authorization header with cookie
// fallback) and stores user_id / user_role in request locals.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.NewError(fiber.StatusUnauthorized, helper.CodeUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secretKey), nil
		}); err != nil {
			return helper.NewError(fiber.StatusUnauthorized, helper.CodeUnauthorized, "Unauthorized - invalid or expired token")
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			return helper.NewError(fiber.StatusUnauthorized, helper.CodeUnauthorized, "Unauthorized - missing user ID")
		}
		role, _ := claims["user_role"].(string)

		c.Locals("user_id", userID)
		c.Locals("user_role", role)
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
			return parts[1], nil
		}
		return "", errors.New("Unauthorized - malformed Authorization header")
	}
	if cookie := c.Cookies("token"); cookie != "" {
		return cookie, nil
	}
	return "", errors.New("Unauthorized - missing token")
}
