package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aspect-hospital/agenda-backend/horarios"
)

// ObtenerDiasDelMes devuelve las celdas del calendario mensual con su
// disponibilidad. Sin parámetros responde el mes en curso.
func (h *Handler) ObtenerDiasDelMes(c *fiber.Ctx) error {
	ahora := time.Now()

	anio := ahora.Year()
	mes := int(ahora.Month())

	if v := c.Query("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{
				"error": "Año inválido",
			})
		}
		anio = n
	}
	if v := c.Query("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			return c.Status(400).JSON(fiber.Map{
				"error": "Mes inválido",
			})
		}
		mes = n
	}

	visible := time.Date(anio, time.Month(mes), 1, 0, 0, 0, 0, time.Local)
	return c.JSON(fiber.Map{
		"year":  anio,
		"month": mes,
		"days":  horarios.CalendarioDelMes(ahora, visible),
	})
}

// ObtenerHorasDelDia devuelve los turnos del día elegido, cada uno marcado
// como disponible o no. Un día no disponible devuelve todos sus turnos
// marcados como no disponibles, nunca un error.
func (h *Handler) ObtenerHorasDelDia(c *fiber.Ctx) error {
	fecha := c.Query("date")
	if fecha == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "La fecha es obligatoria",
		})
	}

	dia, err := time.ParseInLocation("2006-01-02", fecha, time.Local)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Formato de fecha inválido",
		})
	}

	ahora := time.Now()
	return c.JSON(fiber.Map{
		"date":      fecha,
		"available": horarios.EsDiaDisponible(ahora, dia),
		"slots":     horarios.HorasDelDia(ahora, dia),
	})
}
