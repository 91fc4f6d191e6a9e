package horarios

import (
	"testing"
	"time"
)

// lunes 10 de marzo de 2025, 14:30 hora local
func ahoraDePrueba() time.Time {
	return time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local)
}

func dia(anio int, mes time.Month, d int) time.Time {
	return time.Date(anio, mes, d, 0, 0, 0, 0, time.Local)
}

func TestEsDiaHabil(t *testing.T) {
	tests := []struct {
		nombre string
		fecha  time.Time
		quiere bool
	}{
		{"lunes", dia(2025, 3, 10), true},
		{"viernes", dia(2025, 3, 14), true},
		{"sabado", dia(2025, 3, 8), false},
		{"domingo", dia(2025, 3, 9), false},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			if got := EsDiaHabil(tt.fecha); got != tt.quiere {
				t.Errorf("EsDiaHabil(%v) = %v, quiere %v", tt.fecha, got, tt.quiere)
			}
		})
	}
}

func TestEsDiaPasado(t *testing.T) {
	ahora := ahoraDePrueba()

	if !EsDiaPasado(ahora, dia(2025, 3, 7)) {
		t.Error("un día anterior debe ser pasado")
	}
	// La comparación ignora la hora del día: hoy nunca es pasado
	if EsDiaPasado(ahora, dia(2025, 3, 10)) {
		t.Error("hoy no es un día pasado")
	}
	if EsDiaPasado(ahora, dia(2025, 3, 11)) {
		t.Error("mañana no es un día pasado")
	}
}

func TestEsDiaDisponible(t *testing.T) {
	ahora := ahoraDePrueba()

	tests := []struct {
		nombre string
		fecha  time.Time
		quiere bool
	}{
		{"dia habil futuro", dia(2025, 3, 11), true},
		{"hoy antes del cierre", dia(2025, 3, 10), true},
		{"dia pasado", dia(2025, 3, 7), false},
		{"sabado", dia(2025, 3, 15), false},
		{"domingo", dia(2025, 3, 16), false},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			if got := EsDiaDisponible(ahora, tt.fecha); got != tt.quiere {
				t.Errorf("EsDiaDisponible(%v) = %v, quiere %v", tt.fecha, got, tt.quiere)
			}
		})
	}
}

func TestHoyFueraDeHorario(t *testing.T) {
	// A las 17h o más el día en curso queda completamente excluido
	tarde := time.Date(2025, 3, 10, 17, 0, 0, 0, time.Local)
	if EsDiaDisponible(tarde, dia(2025, 3, 10)) {
		t.Error("hoy a las 17h ya no debe estar disponible")
	}

	antes := time.Date(2025, 3, 10, 16, 59, 0, 0, time.Local)
	if !EsDiaDisponible(antes, dia(2025, 3, 10)) {
		t.Error("hoy a las 16:59 todavía debe estar disponible")
	}

	// El corte de las 17h sólo aplica al día en curso
	if !EsDiaDisponible(tarde, dia(2025, 3, 11)) {
		t.Error("el corte de las 17h no debe excluir a mañana")
	}
}

func TestEsHoraDisponible(t *testing.T) {
	ahora := ahoraDePrueba() // 14:30
	hoy := dia(2025, 3, 10)

	// El turno de la hora en curso ya no es reservable
	if EsHoraDisponible(ahora, hoy, 14) {
		t.Error("la hora actual no debe estar disponible")
	}
	// ahora + 1h truncado a la hora = 15:00
	if !EsHoraDisponible(ahora, hoy, 15) {
		t.Error("la hora 15 debe estar disponible a las 14:30")
	}
	if !EsHoraDisponible(ahora, hoy, 16) {
		t.Error("la hora actual + 2 debe estar disponible")
	}

	// Para cualquier otro día todas las horas están disponibles
	manana := dia(2025, 3, 11)
	for _, h := range HorasAtencion() {
		if !EsHoraDisponible(ahora, manana, h) {
			t.Errorf("la hora %d de mañana debe estar disponible", h)
		}
	}
}

func TestHorasAtencion(t *testing.T) {
	horas := HorasAtencion()
	if len(horas) != 10 {
		t.Fatalf("deben ser 10 turnos, hay %d", len(horas))
	}
	if horas[0] != 9 || horas[len(horas)-1] != 18 {
		t.Errorf("los turnos deben ir de 9 a 18, van de %d a %d", horas[0], horas[len(horas)-1])
	}
}

func TestDiasDelMes(t *testing.T) {
	// marzo 2025 empieza en sábado: 6 celdas vacías + 31 días
	dias := DiasDelMes(dia(2025, 3, 1))
	if len(dias) != 37 {
		t.Fatalf("marzo 2025 debe tener 37 celdas, tiene %d", len(dias))
	}
	for i := 0; i < 6; i++ {
		if dias[i] != nil {
			t.Errorf("la celda %d debe estar vacía", i)
		}
	}
	if dias[6] == nil || dias[6].Day() != 1 {
		t.Error("la séptima celda debe ser el día 1")
	}
	if dias[len(dias)-1] == nil || dias[len(dias)-1].Day() != 31 {
		t.Error("la última celda debe ser el día 31")
	}
}

func TestCalendarioDelMes(t *testing.T) {
	ahora := ahoraDePrueba()
	celdas := CalendarioDelMes(ahora, dia(2025, 3, 1))

	if len(celdas) != 37 {
		t.Fatalf("marzo 2025 debe tener 37 celdas, tiene %d", len(celdas))
	}
	for _, celda := range celdas {
		if celda.Dia == 0 {
			if celda.Disponible {
				t.Error("una celda vacía nunca está disponible")
			}
			continue
		}
		fecha, err := time.ParseInLocation("2006-01-02", celda.Fecha, time.Local)
		if err != nil {
			t.Fatalf("fecha inválida en celda: %q", celda.Fecha)
		}
		if celda.Disponible != EsDiaDisponible(ahora, fecha) {
			t.Errorf("disponibilidad inconsistente para %s", celda.Fecha)
		}
	}
}

func TestHorasDelDia(t *testing.T) {
	ahora := ahoraDePrueba()

	turnos := HorasDelDia(ahora, dia(2025, 3, 11))
	if len(turnos) != 10 {
		t.Fatalf("deben ser 10 turnos, hay %d", len(turnos))
	}
	if turnos[0].Etiqueta != "09:00" || turnos[9].Etiqueta != "18:00" {
		t.Errorf("etiquetas incorrectas: %s .. %s", turnos[0].Etiqueta, turnos[9].Etiqueta)
	}
	for _, turno := range turnos {
		if !turno.Disponible {
			t.Errorf("el turno %02d:00 de un día hábil futuro debe estar disponible", turno.Hora)
		}
	}

	// Un día no disponible apaga todos sus turnos
	for _, turno := range HorasDelDia(ahora, dia(2025, 3, 15)) {
		if turno.Disponible {
			t.Errorf("el turno %02d:00 de un sábado no debe estar disponible", turno.Hora)
		}
	}
}

func TestFormatearSlot(t *testing.T) {
	got := FormatearSlot(dia(2025, 3, 10), 14)
	if got != "2025-03-10T14:00" {
		t.Errorf("FormatearSlot = %q, quiere %q", got, "2025-03-10T14:00")
	}

	// La hora siempre va con dos dígitos
	got = FormatearSlot(dia(2025, 3, 10), 9)
	if got != "2025-03-10T09:00" {
		t.Errorf("FormatearSlot = %q, quiere %q", got, "2025-03-10T09:00")
	}
}
