package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnhub_backend/internals/constants"
	"learnhub_backend/internals/features/admin/service"
	userdto "learnhub_backend/internals/features/users/dto"
	usermodel "learnhub_backend/internals/features/users/model"
	helper "learnhub_backend/internals/helpers"
)

type AdminUserController struct {
	DB      *gorm.DB
	Service *service.AdminUserService
}

func NewAdminUserController(db *gorm.DB) *AdminUserController {
	return &AdminUserController{
		DB:      db,
		Service: service.NewAdminUserService(db),
	}
}

// =============================
// List users (optional role filter)
// =============================
func (ctrl *AdminUserController) ListUsers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&usermodel.UserModel{})
	if role := c.Query("role"); role != "" {
		if !constants.IsValidRole(role) {
			return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid role filter")
		}
		q = q.Where("user_role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch users")
	}

	var users []usermodel.UserModel
	if err := q.Order("user_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&users).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch users")
	}

	items := make([]userdto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, userdto.ToUserResponse(u))
	}
	return helper.JsonList(c, "", items, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// =============================
// Delete user (not yourself)
// =============================
func (ctrl *AdminUserController) DeleteUser(c *fiber.Ctx) error {
	callerID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid user id")
	}

	if err := ctrl.Service.DeleteUser(c.UserContext(), callerID, userID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "User deleted successfully")
}
