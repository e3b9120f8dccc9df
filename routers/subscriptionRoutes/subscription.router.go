package subscriptionRoutes

import (
	subscriptionControllers "titanium/controllers/subscription"
	"titanium/middleware"
	subscriptionValidators "titanium/validators/subscription"

	"github.com/gofiber/fiber/v2"
)

func SetupSubscriptionRoutes(app *fiber.App) {
	membershipGroup := app.Group("/memberships")

	membershipGroup.Get("/", middleware.JWTMiddleware, subscriptionControllers.ListMemberships)
	membershipGroup.Post("/", subscriptionValidators.CreateMembership(), middleware.JWTMiddleware, subscriptionControllers.CreateMembership)
	membershipGroup.Post("/subscribe", subscriptionValidators.Subscribe(), middleware.JWTMiddleware, subscriptionControllers.Subscribe)
	membershipGroup.Get("/subscription", middleware.JWTMiddleware, subscriptionControllers.GetSubscription)

	app.Post("/initialize-transaction", subscriptionValidators.Transaction(), middleware.JWTMiddleware, subscriptionControllers.InitializeTransaction)
	app.Get("/verify-transaction/:reference", middleware.JWTMiddleware, subscriptionControllers.VerifyTransaction)
	app.Post("/charge-authorization", subscriptionValidators.Transaction(), middleware.JWTMiddleware, subscriptionControllers.ChargeAuthorization)
}
