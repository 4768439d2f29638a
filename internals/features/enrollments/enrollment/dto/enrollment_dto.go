package dto

import (
	"time"

	coursedto "learnhub_backend/internals/features/courses/courses/dto"
	"learnhub_backend/internals/features/enrollments/enrollment/model"
	progressservice "learnhub_backend/internals/features/enrollments/progress/service"
)

type EnrollmentResponse struct {
	EnrollmentID string    `json:"enrollment_id"`
	UserID       string    `json:"user_id"`
	CourseID     string    `json:"course_id"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}

type EnrollmentStatusResponse struct {
	IsEnrolled bool                `json:"is_enrolled"`
	Enrollment *EnrollmentResponse `json:"enrollment,omitempty"`
}

// MyEnrollmentItem couples an enrollment with its course card and the
// derived progress rollup.
type MyEnrollmentItem struct {
	Enrollment EnrollmentResponse       `json:"enrollment"`
	Course     coursedto.CourseListItem `json:"course"`
	Progress   progressservice.Summary  `json:"progress"`
}

type EnrolledStudent struct {
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

func ToEnrollmentResponse(m model.EnrollmentModel) EnrollmentResponse {
	return EnrollmentResponse{
		EnrollmentID: m.EnrollmentID.String(),
		UserID:       m.EnrollmentUserID.String(),
		CourseID:     m.EnrollmentCourseID.String(),
		EnrolledAt:   m.EnrollmentEnrolledAt,
	}
}
