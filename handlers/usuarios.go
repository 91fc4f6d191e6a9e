package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"github.com/aspect-hospital/agenda-backend/cache"
	"github.com/aspect-hospital/agenda-backend/database"
	"github.com/aspect-hospital/agenda-backend/middleware"
	"github.com/aspect-hospital/agenda-backend/models"
)

// RegistrarUsuario crea un nuevo paciente en el sistema. Los
// administradores sólo existen por el seed inicial.
func (h *Handler) RegistrarUsuario(c *fiber.Ctx) error {
	var req models.RegistroRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	if req.Nombre == "" || req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "Nombre, email y contraseña son requeridos",
		})
	}

	ctx := context.Background()

	var existeEmail int
	err := database.GetDB().QueryRow(ctx,
		"SELECT COUNT(*) FROM Usuario WHERE email = $1", req.Email).Scan(&existeEmail)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error interno del servidor",
		})
	}
	if existeEmail > 0 {
		return c.Status(409).JSON(fiber.Map{
			"error": "El email ya está registrado",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al procesar la contraseña",
		})
	}

	var nuevoID int
	err = database.GetDB().QueryRow(ctx,
		`INSERT INTO Usuario (nombre, email, password, rol)
		 VALUES ($1, $2, $3, $4) RETURNING id_usuario`,
		req.Nombre, req.Email, string(hashedPassword), models.RolPaciente).Scan(&nuevoID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al crear el usuario",
		})
	}

	// El listado de usuarios se sirve cacheado; la escritura lo invalida
	// antes de responder
	h.Cache.Delete(cache.ClaveUsuarios)

	return c.Status(201).JSON(fiber.Map{
		"mensaje": "Usuario creado exitosamente",
		"usuario": models.UsuarioResponse{
			ID:        nuevoID,
			Nombre:    req.Nombre,
			Email:     req.Email,
			Rol:       models.RolPaciente,
			CreatedAt: time.Now(),
		},
	})
}

// Login autentica un usuario y devuelve un token JWT
func (h *Handler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	var usuario models.Usuario
	err := database.GetDB().QueryRow(context.Background(),
		`SELECT id_usuario, nombre, email, password, rol, mfa_enabled, mfa_secret, codigos_respaldo, created_at
		 FROM Usuario WHERE email = $1`, req.Email).Scan(
		&usuario.ID, &usuario.Nombre, &usuario.Email, &usuario.Password,
		&usuario.Rol, &usuario.MFAEnabled, &usuario.MFASecret, &usuario.BackupCodes,
		&usuario.CreatedAt)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"error": "Credenciales inválidas",
		})
	}

	if bcrypt.CompareHashAndPassword([]byte(usuario.Password), []byte(req.Password)) != nil {
		return c.Status(401).JSON(fiber.Map{
			"error": "Credenciales inválidas",
		})
	}

	if usuario.MFAEnabled {
		if req.MFACode == "" {
			return c.Status(401).JSON(fiber.Map{
				"error":        "Código MFA requerido",
				"requires_mfa": true,
			})
		}
		if !h.validarCodigoMFA(&usuario, req.MFACode) {
			return c.Status(401).JSON(fiber.Map{
				"error": "Código MFA inválido",
			})
		}
	}

	token, err := middleware.GenerateJWT(usuario.ID, usuario.Email, usuario.Rol)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al generar token",
		})
	}

	return c.JSON(models.LoginResponse{
		Token: token,
		Usuario: models.UsuarioResponse{
			ID:        usuario.ID,
			Nombre:    usuario.Nombre,
			Email:     usuario.Email,
			Rol:       usuario.Rol,
			CreatedAt: usuario.CreatedAt,
		},
	})
}

// ObtenerPerfil devuelve los datos del usuario autenticado
func (h *Handler) ObtenerPerfil(c *fiber.Ctx) error {
	usuario, ok := middleware.UsuarioActual(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{
			"error": "Usuario no autenticado",
		})
	}

	var perfil models.UsuarioResponse
	err := database.GetDB().QueryRow(context.Background(),
		"SELECT id_usuario, nombre, email, rol, created_at FROM Usuario WHERE id_usuario = $1",
		usuario.ID).Scan(&perfil.ID, &perfil.Nombre, &perfil.Email, &perfil.Rol, &perfil.CreatedAt)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "Usuario no encontrado",
		})
	}

	return c.JSON(perfil)
}

// ObtenerUsuarios lista todos los usuarios (sólo admin), con caché de lectura
func (h *Handler) ObtenerUsuarios(c *fiber.Ctx) error {
	if valor, ok := h.Cache.Get(cache.ClaveUsuarios); ok {
		if usuarios, ok := valor.([]models.UsuarioResponse); ok {
			return c.JSON(usuarios)
		}
	}

	rows, err := database.GetDB().Query(context.Background(),
		"SELECT id_usuario, nombre, email, rol, created_at FROM Usuario ORDER BY id_usuario")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al obtener los usuarios",
		})
	}
	defer rows.Close()

	usuarios := []models.UsuarioResponse{}
	for rows.Next() {
		var u models.UsuarioResponse
		if err := rows.Scan(&u.ID, &u.Nombre, &u.Email, &u.Rol, &u.CreatedAt); err != nil {
			continue
		}
		usuarios = append(usuarios, u)
	}

	h.Cache.Set(cache.ClaveUsuarios, usuarios)
	return c.JSON(usuarios)
}

// ConfigurarMFA genera el secreto TOTP y los códigos de respaldo. El MFA
// queda habilitado recién al verificar el primer código.
func (h *Handler) ConfigurarMFA(c *fiber.Ctx) error {
	usuario, ok := middleware.UsuarioActual(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{
			"error": "Usuario no autenticado",
		})
	}

	var req models.MFASetupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	ctx := context.Background()

	var password string
	err := database.GetDB().QueryRow(ctx,
		"SELECT password FROM Usuario WHERE id_usuario = $1", usuario.ID).Scan(&password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error interno del servidor",
		})
	}
	if bcrypt.CompareHashAndPassword([]byte(password), []byte(req.Password)) != nil {
		return c.Status(401).JSON(fiber.Map{
			"error": "Contraseña incorrecta",
		})
	}

	clave, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Aspect Hospital",
		AccountName: usuario.Email,
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al generar el secreto MFA",
		})
	}

	codigos := generarCodigosRespaldo(8)

	_, err = database.GetDB().Exec(ctx,
		`UPDATE Usuario SET mfa_secret = $1, codigos_respaldo = $2, updated_at = NOW()
		 WHERE id_usuario = $3`,
		clave.Secret(), strings.Join(codigos, ","), usuario.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al guardar la configuración MFA",
		})
	}

	return c.JSON(models.MFASetupResponse{
		Secret:      clave.Secret(),
		QRCodeURL:   clave.URL(),
		BackupCodes: codigos,
	})
}

// VerificarMFA valida el primer código TOTP y habilita el MFA
func (h *Handler) VerificarMFA(c *fiber.Ctx) error {
	usuario, ok := middleware.UsuarioActual(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{
			"error": "Usuario no autenticado",
		})
	}

	var req models.MFAVerifyRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "Código requerido",
		})
	}

	ctx := context.Background()

	var secreto string
	err := database.GetDB().QueryRow(ctx,
		"SELECT mfa_secret FROM Usuario WHERE id_usuario = $1", usuario.ID).Scan(&secreto)
	if err != nil || secreto == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "MFA no configurado",
		})
	}

	if !totp.Validate(req.Code, secreto) {
		return c.Status(401).JSON(fiber.Map{
			"error": "Código MFA inválido",
		})
	}

	_, err = database.GetDB().Exec(ctx,
		"UPDATE Usuario SET mfa_enabled = TRUE, updated_at = NOW() WHERE id_usuario = $1",
		usuario.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al habilitar MFA",
		})
	}

	return c.JSON(fiber.Map{
		"mensaje": "MFA habilitado exitosamente",
	})
}

// validarCodigoMFA acepta un código TOTP vigente o consume un código de
// respaldo sin usar
func (h *Handler) validarCodigoMFA(usuario *models.Usuario, codigo string) bool {
	if totp.Validate(codigo, usuario.MFASecret) {
		return true
	}

	codigos := strings.Split(usuario.BackupCodes, ",")
	for i, respaldo := range codigos {
		if respaldo != "" && respaldo == codigo {
			restantes := append(codigos[:i], codigos[i+1:]...)
			_, err := database.GetDB().Exec(context.Background(),
				"UPDATE Usuario SET codigos_respaldo = $1, updated_at = NOW() WHERE id_usuario = $2",
				strings.Join(restantes, ","), usuario.ID)
			return err == nil
		}
	}
	return false
}

func generarCodigosRespaldo(cantidad int) []string {
	codigos := make([]string, 0, cantidad)
	for i := 0; i < cantidad; i++ {
		b := make([]byte, 4)
		if _, err := rand.Read(b); err != nil {
			continue
		}
		codigos = append(codigos, hex.EncodeToString(b))
	}
	return codigos
}
