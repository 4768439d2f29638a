package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseservice "learnhub_backend/internals/features/courses/courses/service"
	"learnhub_backend/internals/features/courses/curriculum/dto"
	"learnhub_backend/internals/features/courses/curriculum/model"
	helper "learnhub_backend/internals/helpers"
)

type LessonController struct {
	DB *gorm.DB
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{DB: db}
}

func (ctrl *LessonController) loadLessonForOwner(c *fiber.Ctx, lessonID uuid.UUID) (*model.LessonModel, error) {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return nil, err
	}

	var lesson model.LessonModel
	if err := ctrl.DB.Preload("Module").First(&lesson, "lesson_id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewError(fiber.StatusNotFound, helper.CodeNotFound, "Lesson not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load lesson")
	}
	if lesson.Module == nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load lesson")
	}

	if _, err := courseservice.EnsureCourseOwner(ctrl.DB, lesson.Module.ModuleCourseID, userID, helper.GetUserRole(c)); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// =============================
// Create lesson under a module
// =============================
func (ctrl *LessonController) CreateLesson(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	moduleID, err := uuid.Parse(c.Params("moduleId"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid module id")
	}

	var body dto.CreateLessonRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateCurriculum.Struct(&body); err != nil {
		return helper.ValidationError(err)
	}

	var module model.CourseModuleModel
	if err := ctrl.DB.First(&module, "module_id = ?", moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.NewError(fiber.StatusNotFound, helper.CodeNotFound, "Module not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load module")
	}
	if _, err := courseservice.EnsureCourseOwner(ctrl.DB, module.ModuleCourseID, userID, helper.GetUserRole(c)); err != nil {
		return err
	}

	lesson := model.LessonModel{
		LessonModuleID:    moduleID,
		LessonTitle:       body.Title,
		LessonContentType: body.ContentType,
		LessonVideoURL:    body.VideoURL,
		LessonTextContent: body.TextContent,
		LessonDuration:    body.Duration,
		LessonOrderIndex:  body.OrderIndex,
	}
	if err := ctrl.DB.Create(&lesson).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create lesson")
	}

	return helper.JsonCreated(c, "Lesson created successfully", lesson)
}

// =============================
// Update lesson
// =============================
func (ctrl *LessonController) UpdateLesson(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid lesson id")
	}

	var body dto.UpdateLessonRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateCurriculum.Struct(&body); err != nil {
		return helper.ValidationError(err)
	}

	lesson, err := ctrl.loadLessonForOwner(c, lessonID)
	if err != nil {
		return err
	}

	if body.Title != nil {
		lesson.LessonTitle = *body.Title
	}
	if body.ContentType != nil {
		lesson.LessonContentType = *body.ContentType
	}
	if body.VideoURL != nil {
		lesson.LessonVideoURL = body.VideoURL
	}
	if body.TextContent != nil {
		lesson.LessonTextContent = body.TextContent
	}
	if body.Duration != nil {
		lesson.LessonDuration = *body.Duration
	}
	if body.OrderIndex != nil {
		lesson.LessonOrderIndex = *body.OrderIndex
	}

	lesson.Module = nil // avoid re-saving the association
	if err := ctrl.DB.Save(lesson).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update lesson")
	}
	return helper.JsonUpdated(c, "Lesson updated successfully", lesson)
}

// =============================
// Delete lesson
// =============================
func (ctrl *LessonController) DeleteLesson(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid lesson id")
	}

	lesson, err := ctrl.loadLessonForOwner(c, lessonID)
	if err != nil {
		return err
	}

	if err := ctrl.DB.Delete(&model.LessonModel{}, "lesson_id = ?", lesson.LessonID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete lesson")
	}
	return helper.JsonDeleted(c, "Lesson deleted successfully")
}
