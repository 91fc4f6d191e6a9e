package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/aspect-hospital/agenda-backend/handlers"
	"github.com/aspect-hospital/agenda-backend/middleware"
	"github.com/aspect-hospital/agenda-backend/models"
)

// SetupRoutes configura todas las rutas de la aplicación
func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	// Middleware global
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.DefaultRateLimiter())
	app.Use(middleware.LoggingMiddleware())

	// Ruta de salud del sistema
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Aspect Hospital - Agenda de Exámenes",
			"version": "1.0.0",
		})
	})

	api := app.Group("/api")

	// === RUTAS DE AUTENTICACIÓN ===
	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), h.RegistrarUsuario)
	auth.Post("/login", middleware.AuthRateLimiter(), h.Login)
	auth.Get("/profile", middleware.JWTMiddleware(), h.ObtenerPerfil)
	auth.Get("/users", middleware.JWTMiddleware(), middleware.RequireRol(models.RolAdmin), h.ObtenerUsuarios)
	auth.Post("/mfa/setup", middleware.JWTMiddleware(), h.ConfigurarMFA)
	auth.Post("/mfa/verify", middleware.JWTMiddleware(), h.VerificarMFA)

	// === CATÁLOGO DE EXÁMENES ===
	// La lectura del catálogo es pública; su administración es de admin y
	// cada escritura invalida el caché antes de responder
	api.Get("/exams", h.ObtenerExamenes)
	api.Get("/exams/:id", h.ObtenerExamenPorID)
	api.Post("/exams", middleware.JWTMiddleware(), middleware.RequireRol(models.RolAdmin), h.CrearExamen)
	api.Put("/exams/:id", middleware.JWTMiddleware(), middleware.RequireRol(models.RolAdmin), h.ActualizarExamen)
	api.Delete("/exams/:id", middleware.JWTMiddleware(), middleware.RequireRol(models.RolAdmin), h.EliminarExamen)

	// === CITAS ===
	citas := api.Group("/appointments", middleware.JWTMiddleware())
	citas.Post("/", h.CrearCita)
	citas.Get("/", h.ObtenerCitas)
	citas.Get("/:id", h.ObtenerCitaPorID)
	citas.Put("/:id", h.ActualizarCita)
	citas.Delete("/:id", h.EliminarCita)

	// === DISPONIBILIDAD DE TURNOS ===
	disponibilidad := api.Group("/availability", middleware.JWTMiddleware())
	disponibilidad.Get("/days", h.ObtenerDiasDelMes)
	disponibilidad.Get("/slots", h.ObtenerHorasDelDia)
}
