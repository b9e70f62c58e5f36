package routes

import (
	"foodflow/internal/api/handlers"
	"foodflow/internal/middleware"
	"foodflow/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	InventoryHandler handlers.InventoryHandler
	FlagHandler      handlers.FlagHandler
	MealHandler      handlers.MealHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
	MetricsHandler   fiber.Handler
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Inventory()
	c.Flags()
	c.Meals()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
	}
}

func (c *Config) Inventory() {
	inventory := c.App.Group("/api/v1/inventory", c.Middleware.AuthMiddleware(c.JWTService))

	inventory.Get("", c.InventoryHandler.GetItems)
	inventory.Post("", c.InventoryHandler.AddItem)
	inventory.Delete("", c.InventoryHandler.ClearAll)

	// insertion workflow
	inventory.Get("/workflow", c.InventoryHandler.GetWorkflow)
	inventory.Post("/confirm", c.InventoryHandler.ConfirmDuplicate)
	inventory.Post("/cancel", c.InventoryHandler.CancelDuplicate)

	// selection and bulk operations; fixed paths before /:id
	inventory.Get("/selection", c.InventoryHandler.GetSelection)
	inventory.Post("/selection/transfer", c.InventoryHandler.TransferSelected)
	inventory.Delete("/selection/items", c.InventoryHandler.DeleteSelected)
	inventory.Post("/selection/:id", c.InventoryHandler.ToggleSelection)
}

func (c *Config) Flags() {
	flags := c.App.Group("/api/v1/flags", c.Middleware.AuthMiddleware(c.JWTService))
	flags.Get("/:name", c.FlagHandler.GetFlag)
	flags.Put("/:name", c.FlagHandler.SetFlag)
}

func (c *Config) Meals() {
	meals := c.App.Group("/api/v1/meals")
	meals.Get("", c.MealHandler.GetMeals)
	meals.Get("/suggestions", c.Middleware.AuthMiddleware(c.JWTService), c.MealHandler.GetSuggestions)
	meals.Get("/:id", c.MealHandler.GetMealDetail)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	if c.MetricsHandler != nil {
		c.App.Get("/metrics", c.MetricsHandler)
	}
}
