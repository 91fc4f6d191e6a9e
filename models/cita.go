package models

import (
	"time"
)

// Estados posibles de una cita
const (
	EstadoProgramada = "scheduled"
	EstadoConfirmada = "confirmed"
	EstadoCancelada  = "cancelled"
	EstadoCompletada = "completed"
)

// EstadoValido verifica que el estado recibido sea uno de los permitidos
func EstadoValido(estado string) bool {
	switch estado {
	case EstadoProgramada, EstadoConfirmada, EstadoCancelada, EstadoCompletada:
		return true
	}
	return false
}

// Cita representa la tabla Cita en la base de datos
type Cita struct {
	ID        int       `json:"id" db:"id_cita"`
	IDExamen  int       `json:"examId" db:"id_examen"`
	IDUsuario int       `json:"userId" db:"id_usuario"`
	Fecha     time.Time `json:"date" db:"fecha"`
	Estado    string    `json:"status" db:"estado"`
	Notas     string    `json:"notes,omitempty" db:"notas"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CitaDetalle es la cita junto con su examen y la identidad del paciente
type CitaDetalle struct {
	Cita
	Examen   Examen          `json:"exam"`
	Paciente PacienteResumen `json:"user"`
}

// PacienteResumen es la identidad mínima del paciente en las respuestas
type PacienteResumen struct {
	ID     int    `json:"id"`
	Nombre string `json:"name"`
	Email  string `json:"email"`
}

// CrearCitaRequest representa la solicitud para agendar una cita
type CrearCitaRequest struct {
	IDExamen  int    `json:"examId"`
	Fecha     string `json:"date"`
	Notas     string `json:"notes"`
	IDUsuario int    `json:"userId"`
}

// ActualizarCitaRequest usa punteros para distinguir "no enviado" de "vacío"
type ActualizarCitaRequest struct {
	Fecha  *string `json:"date"`
	Notas  *string `json:"notes"`
	Estado *string `json:"status"`
}
