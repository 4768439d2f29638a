package service

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	usermodel "learnhub_backend/internals/features/users/model"
	helper "learnhub_backend/internals/helpers"
)

type AdminUserService struct {
	DB *gorm.DB
}

func NewAdminUserService(db *gorm.DB) *AdminUserService {
	return &AdminUserService{DB: db}
}

// DeleteUser removes a user account. The caller may never remove their own
// account, so a platform always keeps at least the acting admin.
func (s *AdminUserService) DeleteUser(ctx context.Context, callerID, userID uuid.UUID) error {
	if userID == callerID {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeInvalidState, "Cannot delete your own account")
	}

	db := s.DB.WithContext(ctx)

	var user usermodel.UserModel
	if err := db.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.NewError(fiber.StatusNotFound, helper.CodeNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete user")
	}

	if err := db.Delete(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete user")
	}
	return nil
}
