package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnhub_backend/internals/features/users/controller"
	"learnhub_backend/internals/middlewares"
	authMiddleware "learnhub_backend/internals/middlewares/auth"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	authCtrl := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), authCtrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), authCtrl.Login)
	auth.Post("/logout", authCtrl.Logout)
	auth.Get("/me", authMiddleware.AuthMiddleware(), authCtrl.Me)
}
