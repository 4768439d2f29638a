package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnhub_backend/internals/constants"
	"learnhub_backend/internals/features/payments/dto"
	"learnhub_backend/internals/features/payments/model"
	"learnhub_backend/internals/features/payments/service"
	helper "learnhub_backend/internals/helpers"
)

type PaymentController struct {
	DB      *gorm.DB
	Service *service.PaymentService
}

func NewPaymentController(db *gorm.DB, gateway service.Gateway) *PaymentController {
	return &PaymentController{
		DB:      db,
		Service: service.NewPaymentService(db, gateway),
	}
}

// =============================
// Create checkout session (paid courses)
// =============================
func (ctrl *PaymentController) CreateCheckoutSession(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid course id")
	}

	payment, session, err := ctrl.Service.InitiateCheckout(c.UserContext(), userID, courseID)
	if err != nil {
		return err
	}

	return helper.JsonCreated(c, "Checkout session created", dto.CheckoutSessionResponse{
		PaymentID:   payment.PaymentID.String(),
		OrderID:     payment.PaymentOrderID,
		Amount:      payment.PaymentAmount,
		Currency:    payment.PaymentCurrency,
		Token:       session.Token,
		RedirectURL: session.RedirectURL,
	})
}

// =============================
// Verify session (poll after redirect; owner or ADMIN)
// =============================
func (ctrl *PaymentController) VerifySession(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	orderID := c.Params("orderId")
	if orderID == "" {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid order id")
	}

	var payment model.PaymentModel
	if err := ctrl.DB.First(&payment, "payment_order_id = ?", orderID).Error; err != nil {
		return helper.NewError(fiber.StatusNotFound, helper.CodeNotFound, "Payment not found")
	}
	if payment.PaymentUserID != userID && helper.GetUserRole(c) != constants.RoleAdmin {
		return helper.NewError(fiber.StatusForbidden, helper.CodeForbidden, "You can only verify your own payments")
	}

	reconciled, err := ctrl.Service.Reconcile(c.UserContext(), orderID)
	if err != nil {
		return err
	}

	return helper.JsonOK(c, "", dto.VerifySessionResponse{
		Success: reconciled.IsCompleted(),
		Payment: dto.ToPaymentResponse(*reconciled),
	})
}

// =============================
// Gateway notification webhook (unauthenticated; trusts nothing from the
// body beyond the order id, status is re-queried from the gateway)
// =============================
func (ctrl *PaymentController) Notification(c *fiber.Ctx) error {
	var body struct {
		OrderID string `json:"order_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.OrderID == "" {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Missing order_id")
	}

	if _, err := ctrl.Service.Reconcile(c.UserContext(), body.OrderID); err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", nil)
}

// =============================
// My payment history
// =============================
func (ctrl *PaymentController) MyPayments(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var payments []model.PaymentModel
	if err := ctrl.DB.Preload("Course").
		Where("payment_user_id = ?", userID).
		Order("payment_created_at DESC").
		Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	items := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, dto.ToPaymentResponse(p))
	}
	return helper.JsonOK(c, "", items)
}

// =============================
// All payments (ADMIN, paginated, optional status filter)
// =============================
func (ctrl *PaymentController) AllPayments(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.PaymentModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("payment_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	var payments []model.PaymentModel
	if err := q.Preload("Course").Preload("User").
		Order("payment_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	items := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, dto.ToPaymentResponse(p))
	}
	return helper.JsonList(c, "", items, helper.BuildPagination(total, paging.Page, paging.PerPage))
}
