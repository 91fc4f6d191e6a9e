package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimitConfig configuración para rate limiting
type RateLimitConfig struct {
	Max        int           // Número máximo de requests
	Expiration time.Duration // Ventana de tiempo
	Message    string        // Mensaje de error personalizado
}

// DefaultRateLimit configuración por defecto para rate limiting
var DefaultRateLimit = RateLimitConfig{
	Max:        100,
	Expiration: 15 * time.Minute,
	Message:    "Demasiadas peticiones, intenta más tarde",
}

// AuthRateLimit configuración para los endpoints de autenticación
var AuthRateLimit = RateLimitConfig{
	Max:        20,
	Expiration: 30 * time.Minute,
	Message:    "Demasiados intentos de login, intenta más tarde",
}

// CreateRateLimiter crea un middleware de rate limiting por IP
func CreateRateLimiter(config RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.Max,
		Expiration: config.Expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       true,
				"message":     config.Message,
				"retry_after": int(config.Expiration.Seconds()),
			})
		},
	})
}

// DefaultRateLimiter middleware de rate limiting por defecto
func DefaultRateLimiter() fiber.Handler {
	return CreateRateLimiter(DefaultRateLimit)
}

// AuthRateLimiter middleware de rate limiting para autenticación
func AuthRateLimiter() fiber.Handler {
	return CreateRateLimiter(AuthRateLimit)
}

// SecurityHeaders agrega headers de seguridad a toda respuesta
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}
