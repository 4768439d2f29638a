package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	coursemodel "learnhub_backend/internals/features/courses/courses/model"
	"learnhub_backend/internals/features/reviews/dto"
	"learnhub_backend/internals/features/reviews/model"
	"learnhub_backend/internals/features/reviews/service"
	helper "learnhub_backend/internals/helpers"

	"learnhub_backend/internals/constants"
)

var validate = validator.New()

type ReviewController struct {
	DB      *gorm.DB
	Service *service.ReviewService
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{
		DB:      db,
		Service: service.NewReviewService(db),
	}
}

func (ctrl *ReviewController) ensureCourseExists(courseID uuid.UUID) error {
	var count int64
	if err := ctrl.DB.Model(&coursemodel.CourseModel{}).
		Where("course_id = ?", courseID).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load course")
	}
	if count == 0 {
		return helper.NewError(fiber.StatusNotFound, helper.CodeNotFound, "Course not found")
	}
	return nil
}

// =============================
// Create review (enrolled students, once per course)
// =============================
func (ctrl *ReviewController) CreateReview(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid course id")
	}

	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(err)
	}

	var comment *string
	if req.Comment != "" {
		comment = &req.Comment
	}
	review, err := ctrl.Service.Create(c.UserContext(), userID, courseID, req.Rating, comment)
	if err != nil {
		return err
	}

	return helper.JsonCreated(c, "Review created successfully", dto.ToReviewResponse(*review))
}

func (ctrl *ReviewController) loadReview(reviewID uuid.UUID) (*model.ReviewModel, error) {
	var review model.ReviewModel
	if err := ctrl.DB.First(&review, "review_id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewError(fiber.StatusNotFound, helper.CodeNotFound, "Review not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load review")
	}
	return &review, nil
}

// =============================
// Update review (author only)
// =============================
func (ctrl *ReviewController) UpdateReview(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	reviewID, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid review id")
	}

	var req dto.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(err)
	}

	review, err := ctrl.loadReview(reviewID)
	if err != nil {
		return err
	}
	if review.ReviewUserID != userID {
		return helper.NewError(fiber.StatusForbidden, helper.CodeForbidden, "You can only update your own reviews")
	}

	if req.Rating != nil {
		review.ReviewRating = *req.Rating
	}
	if req.Comment != nil {
		review.ReviewComment = req.Comment
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Save(review).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update review")
	}

	return helper.JsonUpdated(c, "Review updated successfully", dto.ToReviewResponse(*review))
}

// =============================
// Delete review (author or ADMIN)
// =============================
func (ctrl *ReviewController) DeleteReview(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	reviewID, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid review id")
	}

	review, err := ctrl.loadReview(reviewID)
	if err != nil {
		return err
	}
	if review.ReviewUserID != userID && helper.GetUserRole(c) != constants.RoleAdmin {
		return helper.NewError(fiber.StatusForbidden, helper.CodeForbidden, "You can only delete your own reviews")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Delete(review).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete review")
	}
	return helper.JsonDeleted(c, "Review deleted successfully")
}

// =============================
// List course reviews (public, paginated, with rating rollup)
// =============================
func (ctrl *ReviewController) ListCourseReviews(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid course id")
	}

	if err := ctrl.ensureCourseExists(courseID); err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 10, 50)

	var total int64
	if err := ctrl.DB.Model(&model.ReviewModel{}).
		Where("review_course_id = ?", courseID).
		Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	var reviews []model.ReviewModel
	if err := ctrl.DB.Preload("User").
		Where("review_course_id = ?", courseID).
		Order("review_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&reviews).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	breakdown, err := service.LoadRatingBreakdown(ctrl.DB, courseID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	items := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, dto.ToReviewResponse(r))
	}

	return helper.JsonOK(c, "", fiber.Map{
		"reviews":    items,
		"stats":      breakdown,
		"pagination": helper.BuildPagination(total, paging.Page, paging.PerPage),
	})
}
