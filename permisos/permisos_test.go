package permisos

import (
	"testing"

	"github.com/aspect-hospital/agenda-backend/models"
)

func TestPermitido(t *testing.T) {
	tests := []struct {
		nombre        string
		rol           string
		esPropietario bool
		op            Operacion
		quiere        bool
	}{
		// El administrador puede todo, sea o no propietario
		{"admin crea para otro", models.RolAdmin, false, CrearParaOtro, true},
		{"admin lee ajena", models.RolAdmin, false, Leer, true},
		{"admin actualiza ajena", models.RolAdmin, false, ActualizarDatos, true},
		{"admin cambia estado ajeno", models.RolAdmin, false, ActualizarEstado, true},
		{"admin elimina ajena", models.RolAdmin, false, Eliminar, true},

		// El paciente sólo opera sobre lo propio
		{"paciente lee propia", models.RolPaciente, true, Leer, true},
		{"paciente lee ajena", models.RolPaciente, false, Leer, false},
		{"paciente actualiza propia", models.RolPaciente, true, ActualizarDatos, true},
		{"paciente actualiza ajena", models.RolPaciente, false, ActualizarDatos, false},
		{"paciente elimina propia", models.RolPaciente, true, Eliminar, true},
		{"paciente elimina ajena", models.RolPaciente, false, Eliminar, false},

		// Cambiar el estado y agendar a nombre de otro son exclusivos del admin
		{"paciente cambia estado propio", models.RolPaciente, true, ActualizarEstado, false},
		{"paciente crea para otro", models.RolPaciente, false, CrearParaOtro, false},

		// Un rol desconocido no obtiene nada
		{"rol desconocido lee propia", "doctor", true, Leer, false},
		{"rol vacio elimina propia", "", true, Eliminar, false},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			if got := Permitido(tt.rol, tt.esPropietario, tt.op); got != tt.quiere {
				t.Errorf("Permitido(%q, %v, %v) = %v, quiere %v",
					tt.rol, tt.esPropietario, tt.op, got, tt.quiere)
			}
		})
	}
}
