package horarios

import (
	"fmt"
	"time"
)

// Horario de atención de la clínica: turnos de una hora de 9:00 a 18:00.
// A partir de las 17h ya no se ofrecen turnos para el día en curso.
const (
	PrimeraHora = 9
	UltimaHora  = 18
	HoraCierre  = 17
)

// HorasAtencion devuelve las horas de atención del día (9h a 18h)
func HorasAtencion() []int {
	horas := make([]int, 0, UltimaHora-PrimeraHora+1)
	for h := PrimeraHora; h <= UltimaHora; h++ {
		horas = append(horas, h)
	}
	return horas
}

// EsDiaHabil indica si el día cae de lunes a viernes
func EsDiaHabil(d time.Time) bool {
	dia := d.Weekday()
	return dia >= time.Monday && dia <= time.Friday
}

// EsDiaPasado compara sólo la fecha, ignorando la hora del día
func EsDiaPasado(ahora, d time.Time) bool {
	hoy := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location())
	fecha := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, ahora.Location())
	return fecha.Before(hoy)
}

func esHoy(ahora, d time.Time) bool {
	y1, m1, d1 := ahora.Date()
	y2, m2, d2 := d.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// FueraDeHorarioHoy excluye el día en curso cuando ya son las 17h o más
func FueraDeHorarioHoy(ahora, d time.Time) bool {
	return esHoy(ahora, d) && ahora.Hour() >= HoraCierre
}

// EsDiaDisponible indica si un día admite reservas: día hábil, no pasado,
// y si es hoy, todavía dentro del horario de atención
func EsDiaDisponible(ahora, d time.Time) bool {
	return EsDiaHabil(d) && !EsDiaPasado(ahora, d) && !FueraDeHorarioHoy(ahora, d)
}

// EsHoraDisponible indica si un turno es reservable. Para el día en curso
// el turno debe estar al menos una hora de reloj por delante del momento
// actual (ahora + 1h, truncado a la hora)
func EsHoraDisponible(ahora, dia time.Time, hora int) bool {
	if !esHoy(ahora, dia) {
		return true
	}
	m := ahora.Add(time.Hour)
	minima := time.Date(m.Year(), m.Month(), m.Day(), m.Hour(), 0, 0, 0, m.Location())
	turno := time.Date(dia.Year(), dia.Month(), dia.Day(), hora, 0, 0, 0, ahora.Location())
	return !turno.Before(minima)
}

// DiasDelMes enumera las celdas del mes visible. Las celdas nil al inicio
// alinean la primera semana con su columna (la semana empieza en domingo)
func DiasDelMes(mes time.Time) []*time.Time {
	primero := time.Date(mes.Year(), mes.Month(), 1, 0, 0, 0, 0, mes.Location())
	ultimo := primero.AddDate(0, 1, -1).Day()

	dias := make([]*time.Time, 0, 42)
	for i := 0; i < int(primero.Weekday()); i++ {
		dias = append(dias, nil)
	}
	for d := 1; d <= ultimo; d++ {
		fecha := time.Date(mes.Year(), mes.Month(), d, 0, 0, 0, 0, mes.Location())
		dias = append(dias, &fecha)
	}
	return dias
}

// CeldaDia es una celda del calendario mensual
type CeldaDia struct {
	Dia        int    `json:"day"`
	Fecha      string `json:"date,omitempty"`
	Disponible bool   `json:"available"`
}

// CeldaHora es un turno del día con su disponibilidad
type CeldaHora struct {
	Hora       int    `json:"hour"`
	Etiqueta   string `json:"label"`
	Disponible bool   `json:"available"`
}

// CalendarioDelMes arma las celdas del mes con su disponibilidad
func CalendarioDelMes(ahora, mes time.Time) []CeldaDia {
	dias := DiasDelMes(mes)
	celdas := make([]CeldaDia, 0, len(dias))
	for _, d := range dias {
		if d == nil {
			celdas = append(celdas, CeldaDia{})
			continue
		}
		celdas = append(celdas, CeldaDia{
			Dia:        d.Day(),
			Fecha:      d.Format("2006-01-02"),
			Disponible: EsDiaDisponible(ahora, *d),
		})
	}
	return celdas
}

// HorasDelDia arma los 10 turnos del día elegido. Si el día mismo no está
// disponible, todos los turnos se marcan como no disponibles
func HorasDelDia(ahora, dia time.Time) []CeldaHora {
	diaOK := EsDiaDisponible(ahora, dia)
	celdas := make([]CeldaHora, 0, UltimaHora-PrimeraHora+1)
	for _, h := range HorasAtencion() {
		celdas = append(celdas, CeldaHora{
			Hora:       h,
			Etiqueta:   fmt.Sprintf("%02d:00", h),
			Disponible: diaOK && EsHoraDisponible(ahora, dia, h),
		})
	}
	return celdas
}

// FormatearSlot serializa el turno elegido como hora local sin zona horaria
func FormatearSlot(dia time.Time, hora int) string {
	return dia.Format("2006-01-02") + fmt.Sprintf("T%02d:00", hora)
}
