package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/aspect-hospital/agenda-backend/models"
)

// secretoJWT resuelve la clave de firma en cada uso, no al cargar el
// paquete: main carga el .env después de que este paquete ya inicializó
func secretoJWT() []byte {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		return []byte(v)
	}
	return []byte("clave_secreta_cambiar_en_produccion")
}

// clave bajo la cual viaja la identidad autenticada en el contexto
const localUsuario = "usuario"

// Claims personalizados para el JWT
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Rol    string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT genera un token JWT para un usuario
func GenerateJWT(id int, email, rol string) (string, error) {
	claims := Claims{
		UserID: id,
		Email:  email,
		Rol:    rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretoJWT())
}

// JWTMiddleware valida el token Bearer y deja en el contexto la identidad
// verificada como valor tipado, que no se vuelve a mutar. La ausencia o
// invalidez del token es 401; la falta de permisos se resuelve después
// con 403.
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{
				"error": "Token de autorización requerido",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(401).JSON(fiber.Map{
				"error": "Formato de token inválido",
			})
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secretoJWT(), nil
		})

		if err != nil || !token.Valid {
			return c.Status(401).JSON(fiber.Map{
				"error": "Token inválido",
			})
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(401).JSON(fiber.Map{
				"error": "Claims inválidos",
			})
		}

		c.Locals(localUsuario, models.UsuarioAutenticado{
			ID:    claims.UserID,
			Email: claims.Email,
			Rol:   claims.Rol,
		})

		return c.Next()
	}
}

// UsuarioActual recupera la identidad autenticada dejada por JWTMiddleware
func UsuarioActual(c *fiber.Ctx) (models.UsuarioAutenticado, bool) {
	u, ok := c.Locals(localUsuario).(models.UsuarioAutenticado)
	return u, ok
}

// RequireRol exige uno de los roles indicados
func RequireRol(rolesPermitidos ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuario, ok := UsuarioActual(c)
		if !ok {
			return c.Status(401).JSON(fiber.Map{
				"error": "Usuario no autenticado",
			})
		}

		for _, rol := range rolesPermitidos {
			if usuario.Rol == rol {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Acceso denegado: permisos insuficientes",
		})
	}
}
