package models

import (
	"time"
)

// Examen representa la tabla Examen en la base de datos
type Examen struct {
	ID           int       `json:"id" db:"id_examen"`
	Nombre       string    `json:"name" db:"nombre"`
	Especialidad string    `json:"specialty" db:"especialidad"`
	Descripcion  string    `json:"description,omitempty" db:"descripcion"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// ExamenRequest representa la solicitud para crear o actualizar un examen
type ExamenRequest struct {
	Nombre       string `json:"name"`
	Especialidad string `json:"specialty"`
	Descripcion  string `json:"description"`
}
