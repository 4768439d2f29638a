package service

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"learnhub_backend/internals/features/courses/courses/model"
	enrollmodel "learnhub_backend/internals/features/enrollments/enrollment/model"
	reviewmodel "learnhub_backend/internals/features/reviews/model"
	usermodel "learnhub_backend/internals/features/users/model"
)

func TestRoundRating(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{4.25, 4.3},
		{4.24, 4.2},
		{3.666666, 3.7},
		{5, 5},
	}
	for _, tc := range cases {
		if got := RoundRating(tc.in); got != tc.want {
			t.Fatalf("RoundRating(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func setupStatsDB(t *testing.T) *gorm.DB {
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
		&model.CourseModel{},
		&enrollmodel.EnrollmentModel{},
		&reviewmodel.ReviewModel{},
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

func statsSeedUser(t *testing.T, db *gorm.DB, role string) usermodel.UserModel {
	t.Helper()
	u := usermodel.UserModel{UserName: "U", UserEmail: uuid.NewString() + "@example.com", UserPasswordHash: "x", UserRole: role}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func statsSeedCourse(t *testing.T, db *gorm.DB, instructorID uuid.UUID) model.CourseModel {
	t.Helper()
	course := model.CourseModel{
		CourseTitle:        "Course",
		CourseDescription:  "desc",
		CourseIsPublished:  true,
		CourseIsApproved:   true,
		CourseInstructorID: instructorID,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

func TestLoadCourseStats(t *testing.T) {
	db := setupStatsDB(t)

	instructor := statsSeedUser(t, db, "INSTRUCTOR")
	rated := statsSeedCourse(t, db, instructor.UserID)
	unrated := statsSeedCourse(t, db, instructor.UserID)

	// Three students: ratings 5, 4, 4 and two enrollments on the rated course.
	ratings := []int{5, 4, 4}
	for i, r := range ratings {
		student := statsSeedUser(t, db, "STUDENT")
		review := reviewmodel.ReviewModel{
			ReviewUserID:   student.UserID,
			ReviewCourseID: rated.CourseID,
			ReviewRating:   r,
		}
		if err := db.Create(&review).Error; err != nil {
			t.Fatalf("seed review: %v", err)
		}
		if i < 2 {
			e := enrollmodel.EnrollmentModel{EnrollmentUserID: student.UserID, EnrollmentCourseID: rated.CourseID}
			if err := db.Create(&e).Error; err != nil {
				t.Fatalf("seed enrollment: %v", err)
			}
		}
	}

	stats, err := LoadCourseStats(db, []uuid.UUID{rated.CourseID, unrated.CourseID})
	if err != nil {
		t.Fatalf("LoadCourseStats: %v", err)
	}

	got := stats[rated.CourseID]
	if got.AverageRating != 4.3 {
		t.Fatalf("average = %v, want 4.3", got.AverageRating)
	}
	if got.ReviewCount != 3 {
		t.Fatalf("review count = %d, want 3", got.ReviewCount)
	}
	if got.EnrollmentCount != 2 {
		t.Fatalf("enrollment count = %d, want 2", got.EnrollmentCount)
	}

	// Absent key means all-zero stats for courses with no activity.
	if s, ok := stats[unrated.CourseID]; ok && (s.ReviewCount != 0 || s.EnrollmentCount != 0) {
		t.Fatalf("unrated course should have zero stats, got %+v", s)
	}
}

func TestLoadCourseStatsEmptyInput(t *testing.T) {
	db := setupStatsDB(t)
	stats, err := LoadCourseStats(db, nil)
	if err != nil {
		t.Fatalf("LoadCourseStats: %v", err)
	}
	if len(stats) != 0 {
		t.Fatalf("expected empty map, got %d entries", len(stats))
	}
}
