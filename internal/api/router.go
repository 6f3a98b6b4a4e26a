package api

import (
	"costsmap/docs"
	"costsmap/internal/api/handlers"
	"costsmap/pkg/auth"
	"costsmap/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	cardHandler *handlers.CardHandler,
	categoryHandler *handlers.CategoryHandler,
	costHandler *handlers.CostHandler,
	incomeHandler *handlers.IncomeHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// importing docs registers the swagger spec through its init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	authRoutes := app.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)

	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	cards := protected.Group("/cards")
	cards.Post("/transfer", cardHandler.Transfer)
	cards.Get("", cardHandler.List)
	cards.Post("", cardHandler.Create)
	cards.Get("/:id", cardHandler.Get)
	cards.Put("/:id", cardHandler.Update)
	cards.Delete("/:id", cardHandler.Delete)

	categories := protected.Group("/categories")
	categories.Get("", categoryHandler.List)
	categories.Post("", categoryHandler.Create)
	categories.Get("/:id/sum", categoryHandler.MonthSum)
	categories.Get("/:id", categoryHandler.Get)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// /total before /:id so the literal segment wins
	costs := protected.Group("/costs")
	costs.Get("/total", costHandler.MonthTotal)
	costs.Get("", costHandler.List)
	costs.Post("", costHandler.Create)
	costs.Get("/:id", costHandler.Get)
	costs.Put("/:id", costHandler.Update)
	costs.Delete("/:id", costHandler.Delete)

	incomes := protected.Group("/incomes")
	incomes.Get("/total", incomeHandler.MonthTotal)
	incomes.Get("", incomeHandler.List)
	incomes.Post("", incomeHandler.Create)
	incomes.Get("/:id", incomeHandler.Get)
	incomes.Put("/:id", incomeHandler.Update)
	incomes.Delete("/:id", incomeHandler.Delete)

	return app
}
