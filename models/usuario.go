package models

import (
	"time"
)

// Roles del sistema (los valores viajan en el token y en las respuestas)
const (
	RolPaciente = "patient"
	RolAdmin    = "admin"
)

// Usuario representa la tabla Usuario en la base de datos
type Usuario struct {
	ID          int       `json:"id" db:"id_usuario"`
	Nombre      string    `json:"name" db:"nombre"`
	Email       string    `json:"email" db:"email"`
	Password    string    `json:"password,omitempty" db:"password"`
	Rol         string    `json:"role" db:"rol"`
	MFAEnabled  bool      `json:"mfa_enabled" db:"mfa_enabled"`
	MFASecret   string    `json:"-" db:"mfa_secret"`
	BackupCodes string    `json:"-" db:"codigos_respaldo"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// UsuarioAutenticado es la identidad verificada que el middleware de
// autenticación deja en el contexto de la petición. Nunca se muta.
type UsuarioAutenticado struct {
	ID    int
	Email string
	Rol   string
}

// EsAdmin indica si la identidad tiene rol de administrador
func (u UsuarioAutenticado) EsAdmin() bool {
	return u.Rol == RolAdmin
}

// UsuarioResponse representa la respuesta sin datos sensibles
type UsuarioResponse struct {
	ID        int       `json:"id"`
	Nombre    string    `json:"name"`
	Email     string    `json:"email"`
	Rol       string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegistroRequest representa la solicitud de registro
type RegistroRequest struct {
	Nombre   string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest representa la solicitud de login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFACode  string `json:"mfa_code,omitempty"`
}

// LoginResponse representa la respuesta del login
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"user"`
}

// Tipos para MFA
type MFASetupRequest struct {
	Password string `json:"password"`
}

type MFASetupResponse struct {
	Secret      string   `json:"secret"`
	QRCodeURL   string   `json:"qr_code_url"`
	BackupCodes []string `json:"backup_codes"`
}

type MFAVerifyRequest struct {
	Code string `json:"code"`
}
