package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	coursemodel "learnhub_backend/internals/features/courses/courses/model"
	enrollservice "learnhub_backend/internals/features/enrollments/enrollment/service"
	"learnhub_backend/internals/features/payments/model"
	usermodel "learnhub_backend/internals/features/users/model"
	helper "learnhub_backend/internals/helpers"
)

// StalePaymentTTL: pending sessions older than this are swept to failed.
const StalePaymentTTL = 24 * time.Hour

type PaymentService struct {
	DB          *gorm.DB
	Gateway     Gateway
	Enrollments *enrollservice.EnrollmentService
}

func NewPaymentService(db *gorm.DB, gateway Gateway) *PaymentService {
	return &PaymentService{
		DB:          db,
		Gateway:     gateway,
		Enrollments: enrollservice.NewEnrollmentService(db),
	}
}

// InitiateCheckout opens a hosted checkout session for a paid course.
// Precondition order mirrors free enrollment: course exists -> enrollable ->
// actually paid -> not already enrolled.
func (s *PaymentService) InitiateCheckout(ctx context.Context, userID, courseID uuid.UUID) (*model.PaymentModel, *CheckoutSession, error) {
	db := s.DB.WithContext(ctx)

	var course coursemodel.CourseModel
	if err := db.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, helper.NewError(fiber.StatusNotFound, helper.CodeNotFound, "Course not found")
		}
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create checkout session")
	}
	if !course.IsEnrollable() {
		return nil, nil, helper.NewError(fiber.StatusBadRequest, helper.CodeInvalidState, "Course is not available for enrollment")
	}
	if course.IsFree() {
		return nil, nil, helper.NewError(fiber.StatusBadRequest, helper.CodeInvalidState, "This course is free. Enroll directly instead.")
	}
	// The gateway charges whole currency units (IDR has no subunit); a
	// fractional price cannot be charged without silently changing the amount.
	if course.CoursePrice != math.Trunc(course.CoursePrice) {
		return nil, nil, helper.NewError(fiber.StatusBadRequest, helper.CodeInvalidState, "Course price has a fractional amount that cannot be charged")
	}

	enrollment, err := s.Enrollments.Find(ctx, userID, courseID)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create checkout session")
	}
	if enrollment != nil {
		return nil, nil, helper.NewError(fiber.StatusBadRequest, helper.CodeConflict, "Already enrolled in this course")
	}

	var user usermodel.UserModel
	if err := db.First(&user, "user_id = ?", userID).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create checkout session")
	}

	orderID := "LH-" + uuid.NewString()
	session, err := s.Gateway.CreateCheckoutSession(ctx, CheckoutOrder{
		OrderID:       orderID,
		Amount:        course.CoursePrice,
		Currency:      course.CourseCurrency,
		ItemName:      course.CourseTitle,
		CustomerName:  user.UserName,
		CustomerEmail: user.UserEmail,
	})
	if err != nil {
		return nil, nil, helper.NewError(fiber.StatusBadGateway, helper.CodeUpstreamFailure, "Payment gateway is unavailable. Please try again later.")
	}

	payment := model.PaymentModel{
		PaymentUserID:   userID,
		PaymentCourseID: courseID,
		PaymentAmount:   course.CoursePrice,
		PaymentCurrency: course.CourseCurrency,
		PaymentStatus:   model.PaymentStatusPending,
		PaymentOrderID:  orderID,
		PaymentMeta: datatypes.JSONMap{
			"user_id":   userID.String(),
			"course_id": courseID.String(),
		},
	}
	if err := db.Create(&payment).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create checkout session")
	}
	return &payment, session, nil
}

// Reconcile re-queries the gateway for one order and, if the gateway says it
// is paid, marks the payment completed and grants the enrollment. Safe to
// call any number of times from any trigger (webhook, verify poll, retries):
// the completed update is guarded so only the first call transitions.
func (s *PaymentService) Reconcile(ctx context.Context, orderID string) (*model.PaymentModel, error) {
	db := s.DB.WithContext(ctx)

	var payment model.PaymentModel
	if err := db.First(&payment, "payment_order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewError(fiber.StatusNotFound, helper.CodeNotFound, "Payment not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to verify payment")
	}

	if payment.IsCompleted() {
		return &payment, nil
	}

	status, err := s.Gateway.CheckTransaction(ctx, orderID)
	if err != nil {
		// The payment stays pending; a later webhook or poll retries.
		return nil, helper.NewError(fiber.StatusBadGateway, helper.CodeUpstreamFailure, "Could not verify payment with the gateway")
	}
	if !status.Paid {
		return &payment, nil
	}

	res := db.Model(&model.PaymentModel{}).
		Where("payment_order_id = ? AND payment_status <> ?", orderID, model.PaymentStatusCompleted).
		Updates(map[string]any{
			"payment_status":      model.PaymentStatusCompleted,
			"payment_gateway_ref": status.GatewayRef,
		})
	if res.Error != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to verify payment")
	}

	payment.PaymentStatus = model.PaymentStatusCompleted
	payment.PaymentGatewayRef = &status.GatewayRef

	// Enrollment grant is idempotent; a lost race with another reconcile of
	// the same order still converges on one enrollment row.
	if _, err := s.Enrollments.Grant(ctx, payment.PaymentUserID, payment.PaymentCourseID); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to grant enrollment")
	}
	return &payment, nil
}

// ExpireStalePayments fails pending sessions older than ttl. Returns the
// number of rows swept.
func (s *PaymentService) ExpireStalePayments(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl)
	res := s.DB.WithContext(ctx).Model(&model.PaymentModel{}).
		Where("payment_status = ? AND payment_created_at < ?", model.PaymentStatusPending, cutoff).
		Update("payment_status", model.PaymentStatusFailed)
	return res.RowsAffected, res.Error
}
