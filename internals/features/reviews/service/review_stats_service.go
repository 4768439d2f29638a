package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseservice "learnhub_backend/internals/features/courses/courses/service"
)

// RatingBreakdown is the per-course rating rollup shown next to review lists.
type RatingBreakdown struct {
	AverageRating float64       `json:"average_rating"`
	ReviewCount   int64         `json:"review_count"`
	Distribution  map[int]int64 `json:"distribution"`
}

// LoadRatingBreakdown aggregates the ratings of one course, including
// how many reviews landed on each star value.
func LoadRatingBreakdown(db *gorm.DB, courseID uuid.UUID) (RatingBreakdown, error) {
	breakdown := RatingBreakdown{
		Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	type ratingRow struct {
		Rating int
		Total  int64
	}
	var rows []ratingRow
	if err := db.Table("reviews").
		Select("review_rating AS rating, COUNT(*) AS total").
		Where("review_course_id = ?", courseID).
		Group("review_rating").
		Scan(&rows).Error; err != nil {
		return breakdown, err
	}

	var sum int64
	for _, r := range rows {
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		breakdown.Distribution[r.Rating] = r.Total
		breakdown.ReviewCount += r.Total
		sum += int64(r.Rating) * r.Total
	}
	if breakdown.ReviewCount > 0 {
		breakdown.AverageRating = courseservice.RoundRating(float64(sum) / float64(breakdown.ReviewCount))
	}
	return breakdown, nil
}
