package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/aspect-hospital/agenda-backend/correo"
	"github.com/aspect-hospital/agenda-backend/database"
	"github.com/aspect-hospital/agenda-backend/horarios"
	"github.com/aspect-hospital/agenda-backend/middleware"
	"github.com/aspect-hospital/agenda-backend/models"
	"github.com/aspect-hospital/agenda-backend/permisos"
)

// CrearCita agenda una cita para un examen en el turno elegido
func (h *Handler) CrearCita(c *fiber.Ctx) error {
	usuario, ok := middleware.UsuarioActual(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{
			"error": "Usuario no autenticado",
		})
	}

	var req models.CrearCitaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	if req.IDExamen == 0 || req.Fecha == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "El examen y la fecha son obligatorios",
		})
	}

	// Un admin puede agendar a nombre de otro paciente; cualquier otro
	// usuario agenda siempre para sí mismo
	idPaciente := usuario.ID
	if usuario.EsAdmin() && req.IDUsuario > 0 {
		idPaciente = req.IDUsuario
	}

	ctx := context.Background()

	var existePaciente int
	err := database.GetDB().QueryRow(ctx,
		"SELECT COUNT(*) FROM Usuario WHERE id_usuario = $1", idPaciente).Scan(&existePaciente)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error interno del servidor",
		})
	}
	if existePaciente == 0 {
		return c.Status(404).JSON(fiber.Map{
			"error": "Paciente no encontrado",
		})
	}

	var existeExamen int
	err = database.GetDB().QueryRow(ctx,
		"SELECT COUNT(*) FROM Examen WHERE id_examen = $1", req.IDExamen).Scan(&existeExamen)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error interno del servidor",
		})
	}
	if existeExamen == 0 {
		return c.Status(404).JSON(fiber.Map{
			"error": "Examen no encontrado",
		})
	}

	// El turno llega como hora local de la clínica, sin zona horaria
	local, err := horarios.ParseSlot(req.Fecha)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Formato de fecha inválido",
		})
	}
	// Un admin puede registrar correcciones fuera del horario de atención
	if !usuario.EsAdmin() && !horarios.DentroDeHorario(local) {
		return c.Status(400).JSON(fiber.Map{
			"error": "La fecha está fuera del horario de atención",
		})
	}

	var idCita int
	err = database.GetDB().QueryRow(ctx,
		`INSERT INTO Cita (id_examen, id_usuario, fecha, estado, notas)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id_cita`,
		req.IDExamen, idPaciente, horarios.AlAlmacenamiento(local),
		models.EstadoProgramada, req.Notas).Scan(&idCita)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al crear la cita",
		})
	}

	detalle, err := obtenerCitaDetalle(ctx, idCita)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al leer la cita creada",
		})
	}

	// Confirmación por correo: mejor esfuerzo, nunca afecta la reserva
	h.notificarCita(*detalle)

	return c.Status(201).JSON(detalle)
}

// ObtenerCitas lista las citas: un admin ve todas, un paciente sólo las suyas
func (h *Handler) ObtenerCitas(c *fiber.Ctx) error {
	usuario, ok := middleware.UsuarioActual(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{
			"error": "Usuario no autenticado",
		})
	}

	query := consultaCitaDetalle + " ORDER BY c.fecha ASC"
	args := []interface{}{}
	if !usuario.EsAdmin() {
		query = consultaCitaDetalle + " WHERE c.id_usuario = $1 ORDER BY c.fecha ASC"
		args = append(args, usuario.ID)
	}

	rows, err := database.GetDB().Query(context.Background(), query, args...)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al obtener las citas",
		})
	}
	defer rows.Close()

	citas := []models.CitaDetalle{}
	for rows.Next() {
		var detalle models.CitaDetalle
		if err := escanearCitaDetalle(rows, &detalle); err != nil {
			continue
		}
		citas = append(citas, detalle)
	}

	return c.JSON(citas)
}

// ObtenerCitaPorID devuelve una cita puntual. Que exista pero no sea del
// paciente que pregunta es un 403, no un 404.
func (h *Handler) ObtenerCitaPorID(c *fiber.Ctx) error {
	usuario, ok := middleware.UsuarioActual(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{
			"error": "Usuario no autenticado",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "ID inválido",
		})
	}

	detalle, err := obtenerCitaDetalle(context.Background(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		return c.Status(404).JSON(fiber.Map{
			"error": "Cita no encontrada",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al obtener la cita",
		})
	}

	if !permisos.Permitido(usuario.Rol, detalle.IDUsuario == usuario.ID, permisos.Leer) {
		return c.Status(403).JSON(fiber.Map{
			"error": "Acceso denegado",
		})
	}

	return c.JSON(detalle)
}

// ActualizarCita modifica fecha, notas o estado de una cita
func (h *Handler) ActualizarCita(c *fiber.Ctx) error {
	usuario, ok := middleware.UsuarioActual(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{
			"error": "Usuario no autenticado",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "ID inválido",
		})
	}

	var req models.ActualizarCitaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	ctx := context.Background()

	var idPropietario int
	err = database.GetDB().QueryRow(ctx,
		"SELECT id_usuario FROM Cita WHERE id_cita = $1", id).Scan(&idPropietario)
	if errors.Is(err, pgx.ErrNoRows) {
		return c.Status(404).JSON(fiber.Map{
			"error": "Cita no encontrada",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error interno del servidor",
		})
	}

	esPropietario := idPropietario == usuario.ID
	if !permisos.Permitido(usuario.Rol, esPropietario, permisos.ActualizarDatos) {
		return c.Status(403).JSON(fiber.Map{
			"error": "Acceso denegado",
		})
	}
	if req.Estado != nil && !permisos.Permitido(usuario.Rol, esPropietario, permisos.ActualizarEstado) {
		return c.Status(403).JSON(fiber.Map{
			"error": "Sólo un administrador puede cambiar el estado",
		})
	}
	if req.Estado != nil && !models.EstadoValido(*req.Estado) {
		return c.Status(400).JSON(fiber.Map{
			"error": "Estado inválido",
		})
	}

	// Armado dinámico: notas en "" es un borrado explícito, distinto de
	// no enviar el campo
	sets := []string{}
	args := []interface{}{}

	if req.Fecha != nil {
		// Misma normalización que al crear: hora local + corrección fija
		local, err := horarios.ParseSlot(*req.Fecha)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{
				"error": "Formato de fecha inválido",
			})
		}
		if !usuario.EsAdmin() && !horarios.DentroDeHorario(local) {
			return c.Status(400).JSON(fiber.Map{
				"error": "La fecha está fuera del horario de atención",
			})
		}
		args = append(args, horarios.AlAlmacenamiento(local))
		sets = append(sets, fmt.Sprintf("fecha = $%d", len(args)))
	}
	if req.Notas != nil {
		args = append(args, *req.Notas)
		sets = append(sets, fmt.Sprintf("notas = $%d", len(args)))
	}
	if req.Estado != nil {
		args = append(args, *req.Estado)
		sets = append(sets, fmt.Sprintf("estado = $%d", len(args)))
	}

	if len(sets) == 0 {
		return c.Status(400).JSON(fiber.Map{
			"error": "Nada que actualizar",
		})
	}

	args = append(args, id)
	query := "UPDATE Cita SET " + strings.Join(sets, ", ") +
		fmt.Sprintf(", updated_at = NOW() WHERE id_cita = $%d", len(args))

	if _, err := database.GetDB().Exec(ctx, query, args...); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al actualizar la cita",
		})
	}

	detalle, err := obtenerCitaDetalle(ctx, id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al leer la cita actualizada",
		})
	}

	return c.JSON(detalle)
}

// EliminarCita borra la cita de forma definitiva
func (h *Handler) EliminarCita(c *fiber.Ctx) error {
	usuario, ok := middleware.UsuarioActual(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{
			"error": "Usuario no autenticado",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "ID inválido",
		})
	}

	ctx := context.Background()

	var idPropietario int
	err = database.GetDB().QueryRow(ctx,
		"SELECT id_usuario FROM Cita WHERE id_cita = $1", id).Scan(&idPropietario)
	if errors.Is(err, pgx.ErrNoRows) {
		return c.Status(404).JSON(fiber.Map{
			"error": "Cita no encontrada",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error interno del servidor",
		})
	}

	if !permisos.Permitido(usuario.Rol, idPropietario == usuario.ID, permisos.Eliminar) {
		return c.Status(403).JSON(fiber.Map{
			"error": "Acceso denegado",
		})
	}

	if _, err := database.GetDB().Exec(ctx, "DELETE FROM Cita WHERE id_cita = $1", id); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al eliminar la cita",
		})
	}

	return c.JSON(fiber.Map{
		"mensaje": "Cita eliminada exitosamente",
	})
}

// consultaCitaDetalle trae la cita junto con su examen y su paciente
const consultaCitaDetalle = `
	SELECT c.id_cita, c.id_examen, c.id_usuario, c.fecha, c.estado, c.notas,
	       c.created_at, c.updated_at,
	       e.id_examen, e.nombre, e.especialidad, e.descripcion, e.created_at, e.updated_at,
	       u.id_usuario, u.nombre, u.email
	FROM Cita c
	JOIN Examen e ON c.id_examen = e.id_examen
	JOIN Usuario u ON c.id_usuario = u.id_usuario`

func obtenerCitaDetalle(ctx context.Context, id int) (*models.CitaDetalle, error) {
	row := database.GetDB().QueryRow(ctx, consultaCitaDetalle+" WHERE c.id_cita = $1", id)
	var detalle models.CitaDetalle
	if err := escanearCitaDetalle(row, &detalle); err != nil {
		return nil, err
	}
	return &detalle, nil
}

func escanearCitaDetalle(row pgx.Row, detalle *models.CitaDetalle) error {
	return row.Scan(
		&detalle.ID, &detalle.IDExamen, &detalle.IDUsuario, &detalle.Fecha,
		&detalle.Estado, &detalle.Notas, &detalle.CreatedAt, &detalle.UpdatedAt,
		&detalle.Examen.ID, &detalle.Examen.Nombre, &detalle.Examen.Especialidad,
		&detalle.Examen.Descripcion, &detalle.Examen.CreatedAt, &detalle.Examen.UpdatedAt,
		&detalle.Paciente.ID, &detalle.Paciente.Nombre, &detalle.Paciente.Email,
	)
}

// notificarCita dispara los correos de confirmación sin bloquear la
// respuesta; una falla sólo queda en el log
func (h *Handler) notificarCita(detalle models.CitaDetalle) {
	go func() {
		err := h.Correo.EnviarConfirmacionCita(correo.DatosCita{
			NombrePaciente: detalle.Paciente.Nombre,
			EmailPaciente:  detalle.Paciente.Email,
			NombreExamen:   detalle.Examen.Nombre,
			Especialidad:   detalle.Examen.Especialidad,
			Fecha:          detalle.Fecha,
			Notas:          detalle.Notas,
		})
		if err != nil {
			log.Printf("Error al enviar confirmación de la cita %d: %v", detalle.ID, err)
		}
	}()
}
