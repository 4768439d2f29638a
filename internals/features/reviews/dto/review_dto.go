package dto

import (
	"time"

	"learnhub_backend/internals/features/reviews/model"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

type ReviewAuthor struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type ReviewResponse struct {
	ReviewID  string        `json:"review_id"`
	CourseID  string        `json:"course_id"`
	Rating    int           `json:"rating"`
	Comment   string        `json:"comment"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	User      *ReviewAuthor `json:"user,omitempty"`
}

func ToReviewResponse(m model.ReviewModel) ReviewResponse {
	resp := ReviewResponse{
		ReviewID:  m.ReviewID.String(),
		CourseID:  m.ReviewCourseID.String(),
		Rating:    m.ReviewRating,
		CreatedAt: m.ReviewCreatedAt,
		UpdatedAt: m.ReviewUpdatedAt,
	}
	if m.ReviewComment != nil {
		resp.Comment = *m.ReviewComment
	}
	if m.User != nil {
		resp.User = &ReviewAuthor{
			UserID: m.User.UserID.String(),
			Name:   m.User.UserName,
		}
	}
	return resp
}
