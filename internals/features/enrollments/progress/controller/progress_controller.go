package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	curriculummodel "learnhub_backend/internals/features/courses/curriculum/model"
	enrollservice "learnhub_backend/internals/features/enrollments/enrollment/service"
	"learnhub_backend/internals/features/enrollments/progress/model"
	"learnhub_backend/internals/features/enrollments/progress/service"
	helper "learnhub_backend/internals/helpers"
)

type ProgressController struct {
	DB          *gorm.DB
	Enrollments *enrollservice.EnrollmentService
	Service     *service.ProgressService
}

func NewProgressController(db *gorm.DB) *ProgressController {
	return &ProgressController{
		DB:          db,
		Enrollments: enrollservice.NewEnrollmentService(db),
		Service:     service.NewProgressService(db),
	}
}

// resolveLessonCourse loads the lesson and returns its parent course id.
func (ctrl *ProgressController) resolveLessonCourse(lessonID uuid.UUID) (uuid.UUID, error) {
	var lesson curriculummodel.LessonModel
	if err := ctrl.DB.Preload("Module").First(&lesson, "lesson_id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, helper.NewError(fiber.StatusNotFound, helper.CodeNotFound, "Lesson not found")
		}
		return uuid.Nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load lesson")
	}
	if lesson.Module == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load lesson")
	}
	return lesson.Module.ModuleCourseID, nil
}

// setCompletion upserts the (user, lesson) progress row.
func (ctrl *ProgressController) setCompletion(c *fiber.Ctx, completed bool) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	lessonID, err := uuid.Parse(c.Params("lessonId"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid lesson id")
	}

	courseID, err := ctrl.resolveLessonCourse(lessonID)
	if err != nil {
		return err
	}
	if err := ctrl.Enrollments.EnsureEnrolled(c.UserContext(), userID, courseID); err != nil {
		return err
	}

	var completedAt *time.Time
	if completed {
		now := time.Now()
		completedAt = &now
	}

	progress := model.ProgressModel{
		ProgressUserID:      userID,
		ProgressLessonID:    lessonID,
		ProgressCompleted:   completed,
		ProgressCompletedAt: completedAt,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "progress_user_id"}, {Name: "progress_lesson_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"progress_completed", "progress_completed_at", "progress_updated_at"}),
		}).
		Create(&progress).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update progress")
	}

	message := "Lesson marked as complete"
	if !completed {
		message = "Lesson marked as incomplete"
	}
	return helper.JsonOK(c, message, progress)
}

func (ctrl *ProgressController) CompleteLesson(c *fiber.Ctx) error {
	return ctrl.setCompletion(c, true)
}

func (ctrl *ProgressController) IncompleteLesson(c *fiber.Ctx) error {
	return ctrl.setCompletion(c, false)
}

// =============================
// Course progress tree + summary
// =============================
func (ctrl *ProgressController) CourseProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid course id")
	}

	if err := ctrl.Enrollments.EnsureEnrolled(c.UserContext(), userID, courseID); err != nil {
		return err
	}

	var modules []curriculummodel.CourseModuleModel
	if err := ctrl.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lesson_order_index ASC")
		}).
		Where("module_course_id = ?", courseID).
		Order("module_order_index ASC").
		Find(&modules).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch progress")
	}

	lessonIDs := make([]uuid.UUID, 0)
	for _, m := range modules {
		for _, l := range m.Lessons {
			lessonIDs = append(lessonIDs, l.LessonID)
		}
	}

	completedByLesson := make(map[uuid.UUID]*model.ProgressModel)
	if len(lessonIDs) > 0 {
		var rows []model.ProgressModel
		if err := ctrl.DB.
			Where("progress_user_id = ? AND progress_lesson_id IN ?", userID, lessonIDs).
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch progress")
		}
		for i := range rows {
			completedByLesson[rows[i].ProgressLessonID] = &rows[i]
		}
	}

	var totalLessons, completedLessons int64
	moduleViews := make([]fiber.Map, 0, len(modules))
	for _, m := range modules {
		lessonViews := make([]fiber.Map, 0, len(m.Lessons))
		for _, l := range m.Lessons {
			totalLessons++
			var completedAt *time.Time
			done := false
			if p, ok := completedByLesson[l.LessonID]; ok && p.ProgressCompleted {
				done = true
				completedAt = p.ProgressCompletedAt
				completedLessons++
			}
			lessonViews = append(lessonViews, fiber.Map{
				"lesson_id":    l.LessonID,
				"title":        l.LessonTitle,
				"content_type": l.LessonContentType,
				"duration":     l.LessonDuration,
				"order_index":  l.LessonOrderIndex,
				"completed":    done,
				"completed_at": completedAt,
			})
		}
		moduleViews = append(moduleViews, fiber.Map{
			"module_id":   m.ModuleID,
			"title":       m.ModuleTitle,
			"order_index": m.ModuleOrderIndex,
			"lessons":     lessonViews,
		})
	}

	return helper.JsonOK(c, "", fiber.Map{
		"course_id": courseID,
		"modules":   moduleViews,
		"summary": service.Summary{
			TotalLessons:     totalLessons,
			CompletedLessons: completedLessons,
			Percentage:       service.CompletionPercentage(completedLessons, totalLessons),
		},
	})
}
