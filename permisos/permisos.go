// Package permisos concentra las reglas de autorización por rol sobre las
// citas, separadas del transporte para poder probarlas de forma aislada.
package permisos

import (
	"github.com/aspect-hospital/agenda-backend/models"
)

// Operacion es una acción sobre una cita sujeta a autorización
type Operacion int

const (
	// CrearParaOtro agenda una cita a nombre de otro paciente
	CrearParaOtro Operacion = iota
	// Leer consulta una cita puntual o el listado
	Leer
	// ActualizarDatos modifica fecha o notas
	ActualizarDatos
	// ActualizarEstado cambia el estado de la cita
	ActualizarEstado
	// Eliminar borra la cita
	Eliminar
)

// Permitido resuelve la matriz rol × operación. esPropietario indica si la
// cita pertenece al usuario que hace la petición.
func Permitido(rol string, esPropietario bool, op Operacion) bool {
	if rol == models.RolAdmin {
		return true
	}
	if rol != models.RolPaciente {
		return false
	}
	switch op {
	case Leer, ActualizarDatos, Eliminar:
		return esPropietario
	default:
		// CrearParaOtro y ActualizarEstado quedan reservados al admin
		return false
	}
}
