package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	coursemodel "learnhub_backend/internals/features/courses/courses/model"
	usermodel "learnhub_backend/internals/features/users/model"
)

/* ===================== Status enum ===================== */

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// PaymentModel tracks one checkout session with the external processor.
// Lifecycle: pending -> completed (never backward); pending -> failed only
// via the expiry sweeper. PaymentOrderID is the processor-facing session key.
type PaymentModel struct {
	PaymentID       uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	PaymentUserID   uuid.UUID `gorm:"column:payment_user_id;type:uuid;not null;index" json:"payment_user_id"`
	PaymentCourseID uuid.UUID `gorm:"column:payment_course_id;type:uuid;not null;index" json:"payment_course_id"`

	PaymentAmount   float64 `gorm:"column:payment_amount;type:numeric(10,2);not null;check:payment_amount >= 0" json:"payment_amount"`
	PaymentCurrency string  `gorm:"column:payment_currency;type:varchar(8);not null;default:'idr'" json:"payment_currency"`
	PaymentStatus   string  `gorm:"column:payment_status;type:varchar(16);not null;default:'pending'" json:"payment_status"`

	PaymentOrderID    string  `gorm:"column:payment_order_id;type:varchar(64);not null;uniqueIndex" json:"payment_order_id"`
	PaymentGatewayRef *string `gorm:"column:payment_gateway_ref;type:varchar(128)" json:"payment_gateway_ref,omitempty"`

	PaymentMeta datatypes.JSONMap `gorm:"column:payment_meta;type:jsonb" json:"payment_meta,omitempty"`

	User   *usermodel.UserModel     `gorm:"foreignKey:PaymentUserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Course *coursemodel.CourseModel `gorm:"foreignKey:PaymentCourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
}

func (PaymentModel) TableName() string { return "payments" }

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	return nil
}

func (m *PaymentModel) IsCompleted() bool { return m.PaymentStatus == PaymentStatusCompleted }
