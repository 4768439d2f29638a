package service

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	coursemodel "learnhub_backend/internals/features/courses/courses/model"
	"learnhub_backend/internals/features/reviews/model"
	usermodel "learnhub_backend/internals/features/users/model"
	helper "learnhub_backend/internals/helpers"
)

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

func seedReviewFixtures(t *testing.T, db *gorm.DB) (usermodel.UserModel, coursemodel.CourseModel) {
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
		CourseTitle:        "Course",
		CourseDescription:  "desc",
		CourseIsPublished:  true,
		CourseIsApproved:   true,
		CourseInstructorID: instructor.UserID,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return student, course
}

func TestCreateReviewOncePerCourse(t *testing.T) {
	db := setupDB(t)
	svc := NewReviewService(db)
	student, course := seedReviewFixtures(t, db)

	if _, err := svc.Enrollments.Grant(context.Background(), student.UserID, course.CourseID); err != nil {
		t.Fatalf("grant enrollment: %v", err)
	}

	review, err := svc.Create(context.Background(), student.UserID, course.CourseID, 5, nil)
	if err != nil {
		t.Fatalf("first review: %v", err)
	}
	if review.ReviewRating != 5 {
		t.Fatalf("rating = %d, want 5", review.ReviewRating)
	}

	_, err = svc.Create(context.Background(), student.UserID, course.CourseID, 3, nil)
	wantAppError(t, err, fiber.StatusBadRequest, helper.CodeConflict)

	var count int64
	db.Model(&model.ReviewModel{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 review row, got %d", count)
	}
}

func TestCreateReviewRequiresEnrollment(t *testing.T) {
	db := setupDB(t)
	svc := NewReviewService(db)
	student, course := seedReviewFixtures(t, db)

	_, err := svc.Create(context.Background(), student.UserID, course.CourseID, 4, nil)
	wantAppError(t, err, fiber.StatusForbidden, helper.CodeForbidden)
}

func TestCreateReviewCourseNotFound(t *testing.T) {
	db := setupDB(t)
	svc := NewReviewService(db)
	student, _ := seedReviewFixtures(t, db)

	_, err := svc.Create(context.Background(), student.UserID, uuid.New(), 4, nil)
	wantAppError(t, err, fiber.StatusNotFound, helper.CodeNotFound)
}

// A concurrent duplicate that slips past the existence check must still lose
// at the unique (user, course) index and be reported as a conflict.
func TestReviewUniqueIndexBlocksDuplicates(t *testing.T) {
	db := setupDB(t)
	student, course := seedReviewFixtures(t, db)

	first := model.ReviewModel{
		ReviewUserID:   student.UserID,
		ReviewCourseID: course.CourseID,
		ReviewRating:   5,
	}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}

	second := model.ReviewModel{
		ReviewUserID:   student.UserID,
		ReviewCourseID: course.CourseID,
		ReviewRating:   2,
	}
	err := db.Create(&second).Error
	if err == nil {
		t.Fatal("duplicate (user, course) insert should fail on the unique index")
	}
	if !IsDuplicateReview(err) {
		t.Fatalf("duplicate insert not recognized as such: %v", err)
	}
}
