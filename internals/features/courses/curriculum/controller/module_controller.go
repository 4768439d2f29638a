package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseservice "learnhub_backend/internals/features/courses/courses/service"
	"learnhub_backend/internals/features/courses/curriculum/dto"
	"learnhub_backend/internals/features/courses/curriculum/model"
	helper "learnhub_backend/internals/helpers"
)

var validateCurriculum = validator.New()

type ModuleController struct {
	DB *gorm.DB
}

func NewModuleController(db *gorm.DB) *ModuleController {
	return &ModuleController{DB: db}
}

// loadModuleForOwner resolves a module plus the ownership check against its
// parent course.
func (ctrl *ModuleController) loadModuleForOwner(c *fiber.Ctx, moduleID uuid.UUID) (*model.CourseModuleModel, error) {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return nil, err
	}

	var module model.CourseModuleModel
	if err := ctrl.DB.First(&module, "module_id = ?", moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewError(fiber.StatusNotFound, helper.CodeNotFound, "Module not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load module")
	}

	if _, err := courseservice.EnsureCourseOwner(ctrl.DB, module.ModuleCourseID, userID, helper.GetUserRole(c)); err != nil {
		return nil, err
	}
	return &module, nil
}

// =============================
// Create module under a course
// =============================
func (ctrl *ModuleController) CreateModule(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid course id")
	}

	var body dto.CreateModuleRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateCurriculum.Struct(&body); err != nil {
		return helper.ValidationError(err)
	}

	if _, err := courseservice.EnsureCourseOwner(ctrl.DB, courseID, userID, helper.GetUserRole(c)); err != nil {
		return err
	}

	module := model.CourseModuleModel{
		ModuleCourseID:   courseID,
		ModuleTitle:      body.Title,
		ModuleOrderIndex: body.OrderIndex,
	}
	if err := ctrl.DB.Create(&module).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create module")
	}

	return helper.JsonCreated(c, "Module created successfully", module)
}

// =============================
// Update module
// =============================
func (ctrl *ModuleController) UpdateModule(c *fiber.Ctx) error {
	moduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid module id")
	}

	var body dto.UpdateModuleRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateCurriculum.Struct(&body); err != nil {
		return helper.ValidationError(err)
	}

	module, err := ctrl.loadModuleForOwner(c, moduleID)
	if err != nil {
		return err
	}

	if body.Title != nil {
		module.ModuleTitle = *body.Title
	}
	if body.OrderIndex != nil {
		module.ModuleOrderIndex = *body.OrderIndex
	}

	if err := ctrl.DB.Save(module).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update module")
	}
	return helper.JsonUpdated(c, "Module updated successfully", module)
}

// =============================
// Delete module (cascades to lessons)
// =============================
func (ctrl *ModuleController) DeleteModule(c *fiber.Ctx) error {
	moduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid module id")
	}

	module, err := ctrl.loadModuleForOwner(c, moduleID)
	if err != nil {
		return err
	}

	if err := ctrl.DB.Delete(module).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete module")
	}
	return helper.JsonDeleted(c, "Module deleted successfully")
}
