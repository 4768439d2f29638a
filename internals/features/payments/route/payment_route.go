package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnhub_backend/internals/constants"
	"learnhub_backend/internals/features/payments/controller"
	"learnhub_backend/internals/features/payments/service"
	authMiddleware "learnhub_backend/internals/middlewares/auth"
)

func PaymentRoutes(api fiber.Router, db *gorm.DB, gateway service.Gateway) {
	paymentCtrl := controller.NewPaymentController(db, gateway)

	api.Post("/courses/:courseId/checkout",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Only students can purchase courses", constants.StudentOnly...),
		paymentCtrl.CreateCheckoutSession,
	)

	api.Get("/payments/:orderId/verify",
		authMiddleware.AuthMiddleware(),
		paymentCtrl.VerifySession,
	)

	// Gateway server-to-server callback; status is re-queried, never trusted.
	api.Post("/payments/notification", paymentCtrl.Notification)

	api.Get("/users/me/payments",
		authMiddleware.AuthMiddleware(),
		paymentCtrl.MyPayments,
	)

	api.Get("/admin/payments",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Admin access required", constants.AdminOnly...),
		paymentCtrl.AllPayments,
	)
}
