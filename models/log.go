package models

import (
	"time"
)

// Log representa una entrada de auditoría de peticiones HTTP
type Log struct {
	IDLog        int       `json:"id_log" db:"id_log"`
	Method       string    `json:"method" db:"method"`
	Path         string    `json:"path" db:"path"`
	StatusCode   int       `json:"status_code" db:"status_code"`
	ResponseTime int       `json:"response_time" db:"response_time"`
	UserAgent    *string   `json:"user_agent" db:"user_agent"`
	IP           string    `json:"ip" db:"ip"`
	Body         *string   `json:"body" db:"body"`
	Email        *string   `json:"email" db:"email"`
	Role         *string   `json:"role" db:"role"`
	LogLevel     string    `json:"log_level" db:"log_level"`
	Environment  string    `json:"environment" db:"environment"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
}

// Constantes para niveles de log
const (
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
	LogLevelSuccess = "success"
)

// Constantes para ambientes
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
	EnvironmentTesting     = "testing"
)
