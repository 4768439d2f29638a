package dto

import (
	"time"

	"learnhub_backend/internals/features/payments/model"
)

type CheckoutSessionResponse struct {
	PaymentID   string  `json:"payment_id"`
	OrderID     string  `json:"order_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Token       string  `json:"token"`
	RedirectURL string  `json:"redirect_url"`
}

type VerifySessionResponse struct {
	Success bool            `json:"success"`
	Payment PaymentResponse `json:"payment"`
}

type PaymentResponse struct {
	PaymentID   string    `json:"payment_id"`
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	CourseID    string    `json:"course_id"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	GatewayRef  *string   `json:"gateway_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CourseTitle string    `json:"course_title,omitempty"`
}

func ToPaymentResponse(m model.PaymentModel) PaymentResponse {
	resp := PaymentResponse{
		PaymentID:  m.PaymentID.String(),
		OrderID:    m.PaymentOrderID,
		UserID:     m.PaymentUserID.String(),
		CourseID:   m.PaymentCourseID.String(),
		Amount:     m.PaymentAmount,
		Currency:   m.PaymentCurrency,
		Status:     m.PaymentStatus,
		GatewayRef: m.PaymentGatewayRef,
		CreatedAt:  m.PaymentCreatedAt,
		UpdatedAt:  m.PaymentUpdatedAt,
	}
	if m.Course != nil {
		resp.CourseTitle = m.Course.CourseTitle
	}
	return resp
}
