package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"learnhub_backend/internals/constants"
	"learnhub_backend/internals/features/users/dto"
	"learnhub_backend/internals/features/users/model"
	"learnhub_backend/internals/features/users/service"
	helper "learnhub_backend/internals/helpers"
)

var validateAuth = validator.New()

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// =============================
// Register
// =============================
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var body dto.RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAuth.Struct(&body); err != nil {
		return helper.ValidationError(err)
	}

	role := body.Role
	if role == "" {
		role = constants.RoleStudent
	}

	var existing model.UserModel
	err := ctrl.DB.Where("user_email = ?", body.Email).First(&existing).Error
	if err == nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeConflict, "Email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to register")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to register")
	}

	user := model.UserModel{
		UserName:         body.Name,
		UserEmail:        body.Email,
		UserPasswordHash: string(hash),
		UserRole:         role,
	}
	if err := ctrl.DB.Create(&user).Error; err != nil {
		// Unique index on email closes the register race.
		return helper.NewError(fiber.StatusBadRequest, helper.CodeConflict, "Email already registered")
	}

	token, err := service.CreateToken(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to issue token")
	}
	setTokenCookie(c, token)

	return helper.JsonCreated(c, "User registered successfully", dto.AuthResponse{
		User:  dto.ToUserResponse(user),
		Token: token,
	})
}

// =============================
// Login
// =============================
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAuth.Struct(&body); err != nil {
		return helper.ValidationError(err)
	}

	var user model.UserModel
	if err := ctrl.DB.Where("user_email = ?", body.Email).First(&user).Error; err != nil {
		return helper.NewError(fiber.StatusUnauthorized, helper.CodeUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPasswordHash), []byte(body.Password)); err != nil {
		return helper.NewError(fiber.StatusUnauthorized, helper.CodeUnauthorized, "Invalid credentials")
	}

	token, err := service.CreateToken(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to issue token")
	}
	setTokenCookie(c, token)

	return helper.JsonOK(c, "Login successful", dto.AuthResponse{
		User:  dto.ToUserResponse(user),
		Token: token,
	})
}

// =============================
// Logout
// =============================
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return helper.JsonOK(c, "Logged out successfully", nil)
}

// =============================
// Me (current user)
// =============================
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.NewError(fiber.StatusUnauthorized, helper.CodeUnauthorized, "User not found")
	}
	return helper.JsonOK(c, "", dto.ToUserResponse(user))
}

func setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(service.TokenLifetime()),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
