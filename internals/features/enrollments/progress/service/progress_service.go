package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Summary is the derived course-level rollup of per-lesson completion.
type Summary struct {
	TotalLessons     int64 `json:"total_lessons"`
	CompletedLessons int64 `json:"completed_lessons"`
	Percentage       int   `json:"percentage"`
}

// CompletionPercentage = round(done/total * 100), 0 when there are no lessons.
func CompletionPercentage(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

type ProgressService struct {
	DB *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db}
}

func (s *ProgressService) countCourseLessons(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var total int64
	err := s.DB.WithContext(ctx).
		Table("lessons").
		Joins("JOIN course_modules ON course_modules.module_id = lessons.lesson_module_id").
		Where("course_modules.module_course_id = ?", courseID).
		Count(&total).Error
	return total, err
}

func (s *ProgressService) countCompletedLessons(ctx context.Context, userID, courseID uuid.UUID) (int64, error) {
	var completed int64
	err := s.DB.WithContext(ctx).
		Table("progress").
		Joins("JOIN lessons ON lessons.lesson_id = progress.progress_lesson_id").
		Joins("JOIN course_modules ON course_modules.module_id = lessons.lesson_module_id").
		Where("course_modules.module_course_id = ? AND progress.progress_user_id = ? AND progress.progress_completed = ?",
			courseID, userID, true).
		Count(&completed).Error
	return completed, err
}

// CourseSummary recomputes the rollup from stored rows; nothing is cached.
func (s *ProgressService) CourseSummary(ctx context.Context, userID, courseID uuid.UUID) (Summary, error) {
	total, err := s.countCourseLessons(ctx, courseID)
	if err != nil {
		return Summary{}, err
	}
	completed, err := s.countCompletedLessons(ctx, userID, courseID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		TotalLessons:     total,
		CompletedLessons: completed,
		Percentage:       CompletionPercentage(completed, total),
	}, nil
}
