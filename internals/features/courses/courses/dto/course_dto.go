package dto

import (
	"time"

	"learnhub_backend/internals/features/courses/courses/model"
	"learnhub_backend/internals/features/courses/courses/service"
)

/* ===========================
   Requests
=========================== */

type CreateCourseRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=255"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Currency    string   `json:"currency" validate:"omitempty,len=3"`
}

type UpdateCourseRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	IsPublished *bool    `json:"is_published"`
}

/* ===========================
   Responses
=========================== */

type InstructorPreview struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type CourseResponse struct {
	CourseID    string             `json:"course_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	Currency    string             `json:"currency"`
	IsPublished bool               `json:"is_published"`
	IsApproved  bool               `json:"is_approved"`
	Instructor  *InstructorPreview `json:"instructor,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// CourseListItem adds the derived rollups to a catalog row.
type CourseListItem struct {
	CourseResponse
	AverageRating   float64 `json:"average_rating"`
	EnrollmentCount int64   `json:"enrollment_count"`
	ReviewCount     int64   `json:"review_count"`
}

func ToCourseResponse(m model.CourseModel) CourseResponse {
	resp := CourseResponse{
		CourseID:    m.CourseID.String(),
		Title:       m.CourseTitle,
		Description: m.CourseDescription,
		Price:       m.CoursePrice,
		Currency:    m.CourseCurrency,
		IsPublished: m.CourseIsPublished,
		IsApproved:  m.CourseIsApproved,
		CreatedAt:   m.CourseCreatedAt,
	}
	if m.Instructor != nil {
		resp.Instructor = &InstructorPreview{
			UserID: m.Instructor.UserID.String(),
			Name:   m.Instructor.UserName,
		}
	}
	return resp
}

func ToCourseListItem(m model.CourseModel, stats service.CourseStats) CourseListItem {
	return CourseListItem{
		CourseResponse:  ToCourseResponse(m),
		AverageRating:   stats.AverageRating,
		EnrollmentCount: stats.EnrollmentCount,
		ReviewCount:     stats.ReviewCount,
	}
}
