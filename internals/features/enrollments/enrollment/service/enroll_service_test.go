package service

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	coursemodel "learnhub_backend/internals/features/courses/courses/model"
	"learnhub_backend/internals/features/enrollments/enrollment/model"
	usermodel "learnhub_backend/internals/features/users/model"
	helper "learnhub_backend/internals/helpers"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique name per test; shared cache keeps the in-memory DB alive
	// across pooled connections.
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
		&model.EnrollmentModel{},
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

func seedUser(t *testing.T, db *gorm.DB, role string) usermodel.UserModel {
	t.Helper()
	user := usermodel.UserModel{
		UserName:         "Test User",
		UserEmail:        uuid.NewString() + "@example.com",
		UserPasswordHash: "x",
		UserRole:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, instructorID uuid.UUID, price float64, published, approved bool) coursemodel.CourseModel {
	t.Helper()
	course := coursemodel.CourseModel{
		CourseTitle:        "Go From Scratch",
		CourseDescription:  "desc",
		CoursePrice:        price,
		CourseCurrency:     "idr",
		CourseIsPublished:  published,
		CourseIsApproved:   approved,
		CourseInstructorID: instructorID,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
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

func TestEnrollFreeCreatesEnrollment(t *testing.T) {
	db := setupDB(t)
	svc := NewEnrollmentService(db)

	instructor := seedUser(t, db, "INSTRUCTOR")
	student := seedUser(t, db, "STUDENT")
	course := seedCourse(t, db, instructor.UserID, 0, true, true)

	enrollment, err := svc.EnrollFree(context.Background(), student.UserID, course.CourseID)
	if err != nil {
		t.Fatalf("EnrollFree: %v", err)
	}
	if enrollment.EnrollmentUserID != student.UserID || enrollment.EnrollmentCourseID != course.CourseID {
		t.Fatalf("enrollment keys mismatch: %+v", enrollment)
	}

	var count int64
	db.Model(&model.EnrollmentModel{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 enrollment row, got %d", count)
	}
}

func TestEnrollFreeTwiceConflicts(t *testing.T) {
	db := setupDB(t)
	svc := NewEnrollmentService(db)

	instructor := seedUser(t, db, "INSTRUCTOR")
	student := seedUser(t, db, "STUDENT")
	course := seedCourse(t, db, instructor.UserID, 0, true, true)

	if _, err := svc.EnrollFree(context.Background(), student.UserID, course.CourseID); err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	_, err := svc.EnrollFree(context.Background(), student.UserID, course.CourseID)
	wantAppError(t, err, fiber.StatusBadRequest, helper.CodeConflict)
}

func TestEnrollFreePaidCourseRejected(t *testing.T) {
	db := setupDB(t)
	svc := NewEnrollmentService(db)

	instructor := seedUser(t, db, "INSTRUCTOR")
	student := seedUser(t, db, "STUDENT")
	course := seedCourse(t, db, instructor.UserID, 150000, true, true)

	_, err := svc.EnrollFree(context.Background(), student.UserID, course.CourseID)
	wantAppError(t, err, fiber.StatusBadRequest, helper.CodePaymentRequired)
}

func TestEnrollFreeUnpublishedRejected(t *testing.T) {
	db := setupDB(t)
	svc := NewEnrollmentService(db)

	instructor := seedUser(t, db, "INSTRUCTOR")
	student := seedUser(t, db, "STUDENT")

	for _, tc := range []struct {
		name      string
		published bool
		approved  bool
	}{
		{"unpublished", false, true},
		{"unapproved", true, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			course := seedCourse(t, db, instructor.UserID, 0, tc.published, tc.approved)
			_, err := svc.EnrollFree(context.Background(), student.UserID, course.CourseID)
			wantAppError(t, err, fiber.StatusBadRequest, helper.CodeInvalidState)
		})
	}
}

func TestEnrollFreeCourseNotFound(t *testing.T) {
	db := setupDB(t)
	svc := NewEnrollmentService(db)
	student := seedUser(t, db, "STUDENT")

	_, err := svc.EnrollFree(context.Background(), student.UserID, uuid.New())
	wantAppError(t, err, fiber.StatusNotFound, helper.CodeNotFound)
}

func TestGrantIsIdempotent(t *testing.T) {
	db := setupDB(t)
	svc := NewEnrollmentService(db)

	instructor := seedUser(t, db, "INSTRUCTOR")
	student := seedUser(t, db, "STUDENT")
	course := seedCourse(t, db, instructor.UserID, 150000, true, true)

	created, err := svc.Grant(context.Background(), student.UserID, course.CourseID)
	if err != nil {
		t.Fatalf("first grant: %v", err)
	}
	if !created {
		t.Fatal("first grant should create a row")
	}

	created, err = svc.Grant(context.Background(), student.UserID, course.CourseID)
	if err != nil {
		t.Fatalf("second grant: %v", err)
	}
	if created {
		t.Fatal("second grant should be a no-op")
	}

	var count int64
	db.Model(&model.EnrollmentModel{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 enrollment row, got %d", count)
	}
}

func TestEnsureEnrolled(t *testing.T) {
	db := setupDB(t)
	svc := NewEnrollmentService(db)

	instructor := seedUser(t, db, "INSTRUCTOR")
	student := seedUser(t, db, "STUDENT")
	outsider := seedUser(t, db, "STUDENT")
	course := seedCourse(t, db, instructor.UserID, 0, true, true)

	if _, err := svc.EnrollFree(context.Background(), student.UserID, course.CourseID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	if err := svc.EnsureEnrolled(context.Background(), student.UserID, course.CourseID); err != nil {
		t.Fatalf("enrolled student rejected: %v", err)
	}
	err := svc.EnsureEnrolled(context.Background(), outsider.UserID, course.CourseID)
	wantAppError(t, err, fiber.StatusForbidden, helper.CodeForbidden)
}
