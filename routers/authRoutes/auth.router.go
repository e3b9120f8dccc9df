package authRoutes

import (
	authControllers "titanium/controllers/auth"
	"titanium/middleware"
	authValidators "titanium/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/logout", authValidators.RefreshToken(), middleware.JWTMiddleware, authControllers.Logout)
	authGroup.Post("/token/refresh", authValidators.RefreshToken(), authControllers.RefreshToken)
	authGroup.Post("/token/verify", authValidators.VerifyToken(), authControllers.VerifyToken)
	authGroup.Get("/user_profile", middleware.JWTMiddleware, authControllers.GetProfile)
	authGroup.Patch("/user_profile", authValidators.UpdateProfile(), middleware.JWTMiddleware, authControllers.UpdateProfile)
	authGroup.Patch("/changepassword", authValidators.ChangePassword(), middleware.JWTMiddleware, authControllers.ChangePassword)
	authGroup.Delete("/delete_user", middleware.JWTMiddleware, authControllers.DeleteAccount)
	authGroup.Post("/password_reset", authValidators.PasswordReset(), authControllers.PasswordReset)
	authGroup.Post("/password_reset/confirm", authValidators.PasswordResetConfirm(), authControllers.PasswordResetConfirm)
	authGroup.Post("/email/otp", authValidators.SendEmailOTP(), authControllers.SendEmailOTP)
	authGroup.Patch("/email/otp/verify", authValidators.VerifyEmailOTP(), authControllers.VerifyEmailOTP)

	enterpriseGroup := app.Group("/enterprise")

	enterpriseGroup.Get("/profile", middleware.OktaMiddleware, authControllers.ExternalProfile)
}
