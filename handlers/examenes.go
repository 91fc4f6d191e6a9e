package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/aspect-hospital/agenda-backend/cache"
	"github.com/aspect-hospital/agenda-backend/database"
	"github.com/aspect-hospital/agenda-backend/models"
)

// ObtenerExamenes lista el catálogo de exámenes, servido desde el caché
// cuando hay una entrada vigente. El catálogo funciona igual si el caché
// nunca acierta.
func (h *Handler) ObtenerExamenes(c *fiber.Ctx) error {
	if valor, ok := h.Cache.Get(cache.ClaveExamenes); ok {
		if examenes, ok := valor.([]models.Examen); ok {
			return c.JSON(examenes)
		}
	}

	examenes, err := listarExamenes(context.Background())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al obtener los exámenes",
		})
	}

	h.Cache.Set(cache.ClaveExamenes, examenes)
	return c.JSON(examenes)
}

// ObtenerExamenPorID obtiene un examen específico por ID
func (h *Handler) ObtenerExamenPorID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "ID inválido",
		})
	}

	var examen models.Examen
	err = database.GetDB().QueryRow(context.Background(),
		`SELECT id_examen, nombre, especialidad, descripcion, created_at, updated_at
		 FROM Examen WHERE id_examen = $1`, id).Scan(
		&examen.ID, &examen.Nombre, &examen.Especialidad, &examen.Descripcion,
		&examen.CreatedAt, &examen.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return c.Status(404).JSON(fiber.Map{
			"error": "Examen no encontrado",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al obtener el examen",
		})
	}

	return c.JSON(examen)
}

// CrearExamen agrega un examen al catálogo (sólo admin)
func (h *Handler) CrearExamen(c *fiber.Ctx) error {
	var req models.ExamenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	if req.Nombre == "" || req.Especialidad == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "El nombre y la especialidad son obligatorios",
		})
	}

	var id int
	err := database.GetDB().QueryRow(context.Background(),
		`INSERT INTO Examen (nombre, especialidad, descripcion)
		 VALUES ($1, $2, $3) RETURNING id_examen`,
		req.Nombre, req.Especialidad, req.Descripcion).Scan(&id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al crear el examen",
		})
	}

	// Invalidación síncrona: la siguiente lectura del catálogo no puede
	// ver la versión anterior
	h.Cache.Delete(cache.ClaveExamenes)

	return c.Status(201).JSON(fiber.Map{
		"mensaje": "Examen creado exitosamente",
		"id":      id,
	})
}

// ActualizarExamen modifica un examen del catálogo (sólo admin)
func (h *Handler) ActualizarExamen(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "ID inválido",
		})
	}

	var req models.ExamenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	if req.Nombre == "" || req.Especialidad == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "El nombre y la especialidad son obligatorios",
		})
	}

	tag, err := database.GetDB().Exec(context.Background(),
		`UPDATE Examen SET nombre = $1, especialidad = $2, descripcion = $3, updated_at = NOW()
		 WHERE id_examen = $4`,
		req.Nombre, req.Especialidad, req.Descripcion, id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al actualizar el examen",
		})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(404).JSON(fiber.Map{
			"error": "Examen no encontrado",
		})
	}

	h.Cache.Delete(cache.ClaveExamenes)

	return c.JSON(fiber.Map{
		"mensaje": "Examen actualizado exitosamente",
	})
}

// EliminarExamen quita un examen del catálogo (sólo admin)
func (h *Handler) EliminarExamen(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "ID inválido",
		})
	}

	tag, err := database.GetDB().Exec(context.Background(),
		"DELETE FROM Examen WHERE id_examen = $1", id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al eliminar el examen",
		})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(404).JSON(fiber.Map{
			"error": "Examen no encontrado",
		})
	}

	h.Cache.Delete(cache.ClaveExamenes)

	return c.JSON(fiber.Map{
		"mensaje": "Examen eliminado exitosamente",
	})
}

func listarExamenes(ctx context.Context) ([]models.Examen, error) {
	rows, err := database.GetDB().Query(ctx,
		`SELECT id_examen, nombre, especialidad, descripcion, created_at, updated_at
		 FROM Examen ORDER BY nombre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	examenes := []models.Examen{}
	for rows.Next() {
		var examen models.Examen
		err := rows.Scan(&examen.ID, &examen.Nombre, &examen.Especialidad,
			&examen.Descripcion, &examen.CreatedAt, &examen.UpdatedAt)
		if err != nil {
			continue
		}
		examenes = append(examenes, examen)
	}
	return examenes, rows.Err()
}
