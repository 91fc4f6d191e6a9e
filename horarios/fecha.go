package horarios

import (
	"os"
	"strconv"
	"time"
)

// FormatoSlot es el formato textual del turno elegido: hora local de la
// clínica, sin sufijo de zona horaria, minutos siempre en 00
const FormatoSlot = "2006-01-02T15:04"

// CorreccionAlmacenamiento compensa el desfase de zona horaria de la capa
// de almacenamiento heredada (el timezone +03:00 de la configuración
// histórica). Es una corrección fija aplicada incondicionalmente, no una
// conversión de zona horaria real. Configurable vía
// CORRECCION_ALMACENAMIENTO_HORAS para poder corregirla sin tocar a los
// que la usan.
var CorreccionAlmacenamiento = 3 * time.Hour

// ConfigurarCorreccion lee la corrección del entorno, si está definida
func ConfigurarCorreccion() {
	v := os.Getenv("CORRECCION_ALMACENAMIENTO_HORAS")
	if v == "" {
		return
	}
	horas, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	CorreccionAlmacenamiento = time.Duration(horas) * time.Hour
}

// ParseSlot interpreta el string del turno tomando año, mes, día, hora y
// minuto tal cual, como hora local, sin conversión alguna
func ParseSlot(s string) (time.Time, error) {
	return time.ParseInLocation(FormatoSlot, s, time.Local)
}

// AlAlmacenamiento aplica la corrección fija antes de persistir la fecha
func AlAlmacenamiento(t time.Time) time.Time {
	return t.Add(CorreccionAlmacenamiento)
}

// DentroDeHorario indica si una hora local cae en un turno legal: día
// hábil, minutos en cero y hora dentro del horario de atención
func DentroDeHorario(t time.Time) bool {
	return EsDiaHabil(t) && t.Minute() == 0 && t.Hour() >= PrimeraHora && t.Hour() <= UltimaHora
}
