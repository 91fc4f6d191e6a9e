package middleware

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aspect-hospital/agenda-backend/database"
	"github.com/aspect-hospital/agenda-backend/models"
)

// LoggingMiddleware registra cada petición HTTP en la tabla Log
func LoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		inicio := time.Now()

		err := c.Next()

		entrada := crearEntradaLog(c, int(time.Since(inicio).Milliseconds()))

		// El guardado no debe demorar la respuesta
		go guardarLog(entrada)

		return err
	}
}

// crearEntradaLog arma la entrada de auditoría a partir de la petición
func crearEntradaLog(c *fiber.Ctx, tiempoRespuesta int) models.Log {
	entrada := models.Log{
		Method:       c.Method(),
		Path:         c.Path(),
		StatusCode:   c.Response().StatusCode(),
		ResponseTime: tiempoRespuesta,
		IP:           ipCliente(c),
		LogLevel:     nivelSegunStatus(c.Response().StatusCode()),
		Environment:  ambiente(),
		Timestamp:    time.Now(),
	}

	if usuario, ok := UsuarioActual(c); ok {
		entrada.Email = &usuario.Email
		rol := usuario.Rol
		entrada.Role = &rol
	}

	if ua := c.Get("User-Agent"); ua != "" {
		entrada.UserAgent = &ua
	}

	// Sólo se guarda el cuerpo en métodos con body, filtrando campos sensibles
	if c.Method() == "POST" || c.Method() == "PUT" || c.Method() == "PATCH" {
		if body := filtrarDatosSensibles(string(c.Body())); body != "" {
			entrada.Body = &body
		}
	}

	return entrada
}

func ipCliente(c *fiber.Ctx) string {
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}

// filtrarDatosSensibles oculta contraseñas y códigos antes de persistir
func filtrarDatosSensibles(body string) string {
	var datos map[string]interface{}
	if err := json.Unmarshal([]byte(body), &datos); err != nil {
		return body
	}
	for _, campo := range []string{"password", "mfa_code", "code"} {
		if _, ok := datos[campo]; ok {
			datos[campo] = "[FILTRADO]"
		}
	}
	filtrado, err := json.Marshal(datos)
	if err != nil {
		return body
	}
	return string(filtrado)
}

func nivelSegunStatus(status int) string {
	switch {
	case status >= 500:
		return models.LogLevelError
	case status >= 400:
		return models.LogLevelWarning
	case status >= 200 && status < 300:
		return models.LogLevelSuccess
	default:
		return models.LogLevelInfo
	}
}

func ambiente() string {
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		return env
	}
	return models.EnvironmentDevelopment
}

func guardarLog(entrada models.Log) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := database.GetDB().Exec(ctx,
		`INSERT INTO Log (method, path, status_code, response_time, user_agent, ip, body, email, role, log_level, environment, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		entrada.Method, entrada.Path, entrada.StatusCode, entrada.ResponseTime,
		entrada.UserAgent, entrada.IP, entrada.Body, entrada.Email, entrada.Role,
		entrada.LogLevel, entrada.Environment, entrada.Timestamp)
	if err != nil {
		log.Printf("Error al guardar log: %v", err)
	}
}
