package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"learnhub_backend/internals/configs"
	"learnhub_backend/internals/features/users/model"
)

func TestCreateTokenRoundTrip(t *testing.T) {
	configs.JWTSecret = "test-secret"

	user := model.UserModel{
		UserID:   uuid.New(),
		UserName: "Test User",
		UserRole: "INSTRUCTOR",
	}

	signed, err := CreateToken(user)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	parsed, err := jwt.Parse(signed, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			t.Fatalf("unexpected signing method: %v", tok.Header["alg"])
		}
		return []byte(configs.JWTSecret), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		t.Fatal("token did not validate")
	}

	if claims["user_id"] != user.UserID.String() {
		t.Fatalf("user_id claim = %v", claims["user_id"])
	}
	if claims["user_role"] != "INSTRUCTOR" {
		t.Fatalf("user_role claim = %v", claims["user_role"])
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatal("exp claim missing")
	}
	remaining := time.Until(time.Unix(int64(exp), 0))
	if remaining < 6*24*time.Hour || remaining > 8*24*time.Hour {
		t.Fatalf("unexpected token lifetime: %s", remaining)
	}
}

func TestCreateTokenRejectsWrongSecret(t *testing.T) {
	configs.JWTSecret = "test-secret"

	signed, err := CreateToken(model.UserModel{UserID: uuid.New(), UserName: "U", UserRole: "STUDENT"})
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	_, err = jwt.Parse(signed, func(tok *jwt.Token) (any, error) {
		return []byte("other-secret"), nil
	})
	if err == nil {
		t.Fatal("token verified with the wrong secret")
	}
}
