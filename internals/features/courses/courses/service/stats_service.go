package service

import (
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseStats are derived numbers, recomputed from stored rows on every read
// and never persisted, so they cannot drift from the facts.
type CourseStats struct {
	AverageRating   float64 `json:"average_rating"`
	ReviewCount     int64   `json:"review_count"`
	EnrollmentCount int64   `json:"enrollment_count"`
}

// RoundRating rounds an average rating to one decimal (0 when no reviews).
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

// LoadCourseStats aggregates review and enrollment rollups for a set of
// courses in two grouped queries.
func LoadCourseStats(db *gorm.DB, courseIDs []uuid.UUID) (map[uuid.UUID]CourseStats, error) {
	stats := make(map[uuid.UUID]CourseStats, len(courseIDs))
	if len(courseIDs) == 0 {
		return stats, nil
	}

	var reviewRows []struct {
		CourseID uuid.UUID `gorm:"column:course_id"`
		Avg      float64   `gorm:"column:avg_rating"`
		Count    int64     `gorm:"column:review_count"`
	}
	if err := db.Table("reviews").
		Select("review_course_id AS course_id, AVG(review_rating) AS avg_rating, COUNT(*) AS review_count").
		Where("review_course_id IN ?", courseIDs).
		Group("review_course_id").
		Scan(&reviewRows).Error; err != nil {
		return nil, err
	}
	for _, r := range reviewRows {
		s := stats[r.CourseID]
		s.AverageRating = RoundRating(r.Avg)
		s.ReviewCount = r.Count
		stats[r.CourseID] = s
	}

	var enrollmentRows []struct {
		CourseID uuid.UUID `gorm:"column:course_id"`
		Count    int64     `gorm:"column:enrollment_count"`
	}
	if err := db.Table("enrollments").
		Select("enrollment_course_id AS course_id, COUNT(*) AS enrollment_count").
		Where("enrollment_course_id IN ?", courseIDs).
		Group("enrollment_course_id").
		Scan(&enrollmentRows).Error; err != nil {
		return nil, err
	}
	for _, r := range enrollmentRows {
		s := stats[r.CourseID]
		s.EnrollmentCount = r.Count
		stats[r.CourseID] = s
	}

	return stats, nil
}
