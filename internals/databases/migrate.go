package database

import (
	"log"

	"gorm.io/gorm"

	coursemodel "learnhub_backend/internals/features/courses/courses/model"
	curriculummodel "learnhub_backend/internals/features/courses/curriculum/model"
	enrollmentmodel "learnhub_backend/internals/features/enrollments/enrollment/model"
	progressmodel "learnhub_backend/internals/features/enrollments/progress/model"
	paymentmodel "learnhub_backend/internals/features/payments/model"
	reviewmodel "learnhub_backend/internals/features/reviews/model"
	usermodel "learnhub_backend/internals/features/users/model"
)

// Migrate keeps the schema in sync with the models. Parent tables first so
// the FK constraints (cascade deletes for modules/lessons) can be created.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&usermodel.UserModel{},
		&coursemodel.CourseModel{},
		&curriculummodel.CourseModuleModel{},
		&curriculummodel.LessonModel{},
		&enrollmentmodel.EnrollmentModel{},
		&progressmodel.ProgressModel{},
		&reviewmodel.ReviewModel{},
		&paymentmodel.PaymentModel{},
	)
	if err != nil {
		return err
	}
	log.Println("[INFO] migrations applied")
	return nil
}
