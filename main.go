package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/aspect-hospital/agenda-backend/cache"
	"github.com/aspect-hospital/agenda-backend/correo"
	"github.com/aspect-hospital/agenda-backend/database"
	"github.com/aspect-hospital/agenda-backend/handlers"
	"github.com/aspect-hospital/agenda-backend/horarios"
	"github.com/aspect-hospital/agenda-backend/routes"
)

func main() {
	// Cargar variables de entorno
	if err := godotenv.Load(); err != nil {
		log.Println("Advertencia: No se pudo cargar el archivo .env")
	}

	horarios.ConfigurarCorreccion()

	// Conectar a la base de datos, sincronizar esquema y sembrar datos
	database.ConnectDB()
	defer database.CloseDB()
	database.Migrar()
	database.SembrarExamenes()
	database.SembrarUsuarios()

	// Dependencias construidas en el arranque e inyectadas a los handlers
	lectura := cache.New(ttlCache())
	mailer := correo.NewDesdeEnv()
	h := handlers.New(lectura, mailer)

	// Crear instancia de Fiber con configuración
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
		AppName: "Aspect Hospital - Agenda de Exámenes v1.0.0",
	})

	// Configurar rutas
	routes.SetupRoutes(app, h)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{
			"error":   "Ruta no encontrada",
			"message": "La ruta solicitada no existe en este servidor",
			"path":    c.Path(),
			"method":  c.Method(),
		})
	})

	// Obtener puerto del entorno o usar 3000 por defecto
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("Servidor Aspect Hospital iniciado en puerto %s", port)
	log.Printf("Estado del sistema: http://localhost:%s/health", port)
	log.Fatal(app.Listen(":" + port))
}

func ttlCache() time.Duration {
	if v := os.Getenv("CACHE_TTL_MINUTOS"); v != "" {
		if minutos, err := strconv.Atoi(v); err == nil && minutos > 0 {
			return time.Duration(minutos) * time.Minute
		}
	}
	return cache.TTLPorDefecto
}
