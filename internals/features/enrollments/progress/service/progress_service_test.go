package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	coursemodel "learnhub_backend/internals/features/courses/courses/model"
	curriculummodel "learnhub_backend/internals/features/courses/curriculum/model"
	"learnhub_backend/internals/features/enrollments/progress/model"
	usermodel "learnhub_backend/internals/features/users/model"
)

func TestCompletionPercentage(t *testing.T) {
	cases := []struct {
		name      string
		completed int64
		total     int64
		want      int
	}{
		{"no lessons", 0, 0, 0},
		{"none done", 0, 10, 0},
		{"half done", 2, 4, 50},
		{"rounds up", 1, 3, 33},
		{"rounds nearest", 2, 3, 67},
		{"all done", 7, 7, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CompletionPercentage(tc.completed, tc.total); got != tc.want {
				t.Fatalf("CompletionPercentage(%d, %d) = %d, want %d", tc.completed, tc.total, got, tc.want)
			}
		})
	}
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
		&curriculummodel.CourseModuleModel{},
		&curriculummodel.LessonModel{},
		&model.ProgressModel{},
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

func TestCourseSummaryCountsAcrossModules(t *testing.T) {
	db := setupDB(t)
	svc := NewProgressService(db)

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

	// Two modules, two lessons each.
	var lessons []curriculummodel.LessonModel
	for mi := 0; mi < 2; mi++ {
		module := curriculummodel.CourseModuleModel{
			ModuleCourseID:   course.CourseID,
			ModuleTitle:      "Module",
			ModuleOrderIndex: mi,
		}
		if err := db.Create(&module).Error; err != nil {
			t.Fatalf("seed module: %v", err)
		}
		for li := 0; li < 2; li++ {
			lesson := curriculummodel.LessonModel{
				LessonModuleID:    module.ModuleID,
				LessonTitle:       "Lesson",
				LessonContentType: curriculummodel.LessonContentTypeText,
				LessonOrderIndex:  li,
			}
			if err := db.Create(&lesson).Error; err != nil {
				t.Fatalf("seed lesson: %v", err)
			}
			lessons = append(lessons, lesson)
		}
	}

	// Complete two of four, one per module.
	now := time.Now()
	for _, idx := range []int{0, 2} {
		p := model.ProgressModel{
			ProgressUserID:      student.UserID,
			ProgressLessonID:    lessons[idx].LessonID,
			ProgressCompleted:   true,
			ProgressCompletedAt: &now,
		}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed progress: %v", err)
		}
	}
	// An incomplete row must not count.
	if err := db.Create(&model.ProgressModel{
		ProgressUserID:   student.UserID,
		ProgressLessonID: lessons[1].LessonID,
	}).Error; err != nil {
		t.Fatalf("seed incomplete progress: %v", err)
	}

	summary, err := svc.CourseSummary(context.Background(), student.UserID, course.CourseID)
	if err != nil {
		t.Fatalf("CourseSummary: %v", err)
	}
	if summary.TotalLessons != 4 {
		t.Fatalf("total = %d, want 4", summary.TotalLessons)
	}
	if summary.CompletedLessons != 2 {
		t.Fatalf("completed = %d, want 2", summary.CompletedLessons)
	}
	if summary.Percentage != 50 {
		t.Fatalf("percentage = %d, want 50", summary.Percentage)
	}
}

func TestCourseSummaryEmptyCourse(t *testing.T) {
	db := setupDB(t)
	svc := NewProgressService(db)

	summary, err := svc.CourseSummary(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("CourseSummary: %v", err)
	}
	if summary.TotalLessons != 0 || summary.CompletedLessons != 0 || summary.Percentage != 0 {
		t.Fatalf("empty course should be all zeros, got %+v", summary)
	}
}
