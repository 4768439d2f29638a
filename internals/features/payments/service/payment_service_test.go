package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	coursemodel "learnhub_backend/internals/features/courses/courses/model"
	enrollmodel "learnhub_backend/internals/features/enrollments/enrollment/model"
	"learnhub_backend/internals/features/payments/model"
	usermodel "learnhub_backend/internals/features/users/model"
	helper "learnhub_backend/internals/helpers"
)

// stubGateway scripts the processor's answers and records call counts.
type stubGateway struct {
	sessions     int
	checks       int
	failSessions bool
	failChecks   bool
	paid         bool
}

func (g *stubGateway) CreateCheckoutSession(ctx context.Context, order CheckoutOrder) (*CheckoutSession, error) {
	g.sessions++
	if g.failSessions {
		return nil, errors.New("gateway down")
	}
	return &CheckoutSession{Token: "tok-" + order.OrderID, RedirectURL: "https://pay.example/" + order.OrderID}, nil
}

func (g *stubGateway) CheckTransaction(ctx context.Context, orderID string) (*TransactionStatus, error) {
	g.checks++
	if g.failChecks {
		return nil, errors.New("gateway down")
	}
	return &TransactionStatus{
		OrderID:    orderID,
		Paid:       g.paid,
		GatewayRef: "txn-" + orderID,
		RawStatus:  "settlement",
	}, nil
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&usermodel.UserModel{},
		&coursemodel.CourseModel{},
		&enrollmodel.EnrollmentModel{},
		&model.PaymentModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedCheckoutFixtures(t *testing.T, db *gorm.DB, price float64) (usermodel.UserModel, coursemodel.CourseModel) {
	t.Helper()
	instructor := usermodel.UserModel{UserName: "Instructor", UserEmail: uuid.NewString() + "@example.com", UserPasswordHash: "x", UserRole: "INSTRUCTOR"}
	student := usermodel.UserModel{UserName: "Student", UserEmail: uuid.NewString() + "@example.com", UserPasswordHash: "x", UserRole: "STUDENT"}
	if err := db.Create(&instructor).Error; err != nil {
		t.Fatalf("seed instructor: %v", err)
	}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	course := coursemodel.CourseModel{
		CourseTitle:        "Paid Course",
		CourseDescription:  "desc",
		CoursePrice:        price,
		CourseCurrency:     "idr",
		CourseIsPublished:  true,
		CourseIsApproved:   true,
		CourseInstructorID: instructor.UserID,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return student, course
}

func wantAppError(t *testing.T, err error, status int, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s, got nil", code)
	}
	ae, ok := err.(*helper.AppError)
	if !ok {
		t.Fatalf("expected *helper.AppError, got %T: %v", err, err)
	}
	if ae.Status != status || ae.Code != code {
		t.Fatalf("expected %d/%s, got %d/%s (%s)", status, code, ae.Status, ae.Code, ae.Message)
	}
}

func TestInitiateCheckoutCreatesPendingPayment(t *testing.T) {
	db := setupDB(t)
	gw := &stubGateway{}
	svc := NewPaymentService(db, gw)
	student, course := seedCheckoutFixtures(t, db, 150000)

	payment, session, err := svc.InitiateCheckout(context.Background(), student.UserID, course.CourseID)
	if err != nil {
		t.Fatalf("InitiateCheckout: %v", err)
	}
	if payment.PaymentStatus != model.PaymentStatusPending {
		t.Fatalf("expected pending, got %s", payment.PaymentStatus)
	}
	if payment.PaymentAmount != 150000 {
		t.Fatalf("amount mismatch: %v", payment.PaymentAmount)
	}
	if session.RedirectURL == "" || session.Token == "" {
		t.Fatalf("session incomplete: %+v", session)
	}
	if gw.sessions != 1 {
		t.Fatalf("expected 1 gateway session call, got %d", gw.sessions)
	}
}

func TestInitiateCheckoutFreeCourseRejected(t *testing.T) {
	db := setupDB(t)
	svc := NewPaymentService(db, &stubGateway{})
	student, course := seedCheckoutFixtures(t, db, 0)

	_, _, err := svc.InitiateCheckout(context.Background(), student.UserID, course.CourseID)
	wantAppError(t, err, fiber.StatusBadRequest, helper.CodeInvalidState)
}

func TestInitiateCheckoutFractionalPriceRejected(t *testing.T) {
	db := setupDB(t)
	gw := &stubGateway{}
	svc := NewPaymentService(db, gw)
	student, course := seedCheckoutFixtures(t, db, 150000.50)

	_, _, err := svc.InitiateCheckout(context.Background(), student.UserID, course.CourseID)
	wantAppError(t, err, fiber.StatusBadRequest, helper.CodeInvalidState)

	if gw.sessions != 0 {
		t.Fatalf("gateway should not be called for an unchargeable price, got %d calls", gw.sessions)
	}
}

func TestInitiateCheckoutAlreadyEnrolledRejected(t *testing.T) {
	db := setupDB(t)
	svc := NewPaymentService(db, &stubGateway{})
	student, course := seedCheckoutFixtures(t, db, 150000)

	if _, err := svc.Enrollments.Grant(context.Background(), student.UserID, course.CourseID); err != nil {
		t.Fatalf("grant: %v", err)
	}
	_, _, err := svc.InitiateCheckout(context.Background(), student.UserID, course.CourseID)
	wantAppError(t, err, fiber.StatusBadRequest, helper.CodeConflict)
}

func TestInitiateCheckoutGatewayFailure(t *testing.T) {
	db := setupDB(t)
	svc := NewPaymentService(db, &stubGateway{failSessions: true})
	student, course := seedCheckoutFixtures(t, db, 150000)

	_, _, err := svc.InitiateCheckout(context.Background(), student.UserID, course.CourseID)
	wantAppError(t, err, fiber.StatusBadGateway, helper.CodeUpstreamFailure)

	// No pending row should be left behind for a session that never opened.
	var count int64
	db.Model(&model.PaymentModel{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no payment rows, got %d", count)
	}
}

func TestReconcilePaidCompletesAndEnrolls(t *testing.T) {
	db := setupDB(t)
	gw := &stubGateway{paid: true}
	svc := NewPaymentService(db, gw)
	student, course := seedCheckoutFixtures(t, db, 150000)

	payment, _, err := svc.InitiateCheckout(context.Background(), student.UserID, course.CourseID)
	if err != nil {
		t.Fatalf("InitiateCheckout: %v", err)
	}

	reconciled, err := svc.Reconcile(context.Background(), payment.PaymentOrderID)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !reconciled.IsCompleted() {
		t.Fatalf("expected completed, got %s", reconciled.PaymentStatus)
	}
	if reconciled.PaymentGatewayRef == nil || *reconciled.PaymentGatewayRef == "" {
		t.Fatal("gateway ref not recorded")
	}

	var enrollments int64
	db.Model(&enrollmodel.EnrollmentModel{}).
		Where("enrollment_user_id = ? AND enrollment_course_id = ?", student.UserID, course.CourseID).
		Count(&enrollments)
	if enrollments != 1 {
		t.Fatalf("expected 1 enrollment, got %d", enrollments)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	db := setupDB(t)
	gw := &stubGateway{paid: true}
	svc := NewPaymentService(db, gw)
	student, course := seedCheckoutFixtures(t, db, 150000)

	payment, _, err := svc.InitiateCheckout(context.Background(), student.UserID, course.CourseID)
	if err != nil {
		t.Fatalf("InitiateCheckout: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Reconcile(context.Background(), payment.PaymentOrderID); err != nil {
			t.Fatalf("reconcile #%d: %v", i+1, err)
		}
	}

	// Completed payments short-circuit before the gateway.
	if gw.checks != 1 {
		t.Fatalf("expected 1 gateway check, got %d", gw.checks)
	}

	var enrollments int64
	db.Model(&enrollmodel.EnrollmentModel{}).Count(&enrollments)
	if enrollments != 1 {
		t.Fatalf("expected 1 enrollment, got %d", enrollments)
	}
}

func TestReconcileUnpaidStaysPending(t *testing.T) {
	db := setupDB(t)
	gw := &stubGateway{paid: false}
	svc := NewPaymentService(db, gw)
	student, course := seedCheckoutFixtures(t, db, 150000)

	payment, _, err := svc.InitiateCheckout(context.Background(), student.UserID, course.CourseID)
	if err != nil {
		t.Fatalf("InitiateCheckout: %v", err)
	}

	reconciled, err := svc.Reconcile(context.Background(), payment.PaymentOrderID)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if reconciled.PaymentStatus != model.PaymentStatusPending {
		t.Fatalf("expected pending, got %s", reconciled.PaymentStatus)
	}

	var enrollments int64
	db.Model(&enrollmodel.EnrollmentModel{}).Count(&enrollments)
	if enrollments != 0 {
		t.Fatalf("expected no enrollments, got %d", enrollments)
	}
}

func TestReconcileUnknownOrder(t *testing.T) {
	db := setupDB(t)
	svc := NewPaymentService(db, &stubGateway{})

	_, err := svc.Reconcile(context.Background(), "LH-"+uuid.NewString())
	wantAppError(t, err, fiber.StatusNotFound, helper.CodeNotFound)
}

func TestExpireStalePayments(t *testing.T) {
	db := setupDB(t)
	svc := NewPaymentService(db, &stubGateway{})
	student, course := seedCheckoutFixtures(t, db, 150000)

	stale := model.PaymentModel{
		PaymentUserID:    student.UserID,
		PaymentCourseID:  course.CourseID,
		PaymentAmount:    150000,
		PaymentCurrency:  "idr",
		PaymentStatus:    model.PaymentStatusPending,
		PaymentOrderID:   "LH-" + uuid.NewString(),
		PaymentCreatedAt: time.Now().Add(-48 * time.Hour),
	}
	fresh := model.PaymentModel{
		PaymentUserID:   student.UserID,
		PaymentCourseID: course.CourseID,
		PaymentAmount:   150000,
		PaymentCurrency: "idr",
		PaymentStatus:   model.PaymentStatusPending,
		PaymentOrderID:  "LH-" + uuid.NewString(),
	}
	if err := db.Create(&stale).Error; err != nil {
		t.Fatalf("seed stale: %v", err)
	}
	if err := db.Create(&fresh).Error; err != nil {
		t.Fatalf("seed fresh: %v", err)
	}

	swept, err := svc.ExpireStalePayments(context.Background(), StalePaymentTTL)
	if err != nil {
		t.Fatalf("ExpireStalePayments: %v", err)
	}
	if swept != 1 {
		t.Fatalf("expected 1 swept row, got %d", swept)
	}

	var reloaded model.PaymentModel
	db.First(&reloaded, "payment_order_id = ?", stale.PaymentOrderID)
	if reloaded.PaymentStatus != model.PaymentStatusFailed {
		t.Fatalf("stale payment should be failed, got %s", reloaded.PaymentStatus)
	}
	db.First(&reloaded, "payment_order_id = ?", fresh.PaymentOrderID)
	if reloaded.PaymentStatus != model.PaymentStatusPending {
		t.Fatalf("fresh payment should stay pending, got %s", reloaded.PaymentStatus)
	}
}
