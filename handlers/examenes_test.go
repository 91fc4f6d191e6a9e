package handlers_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/aspect-hospital/agenda-backend/models"
)

func TestObtenerExamenes(t *testing.T) {
	app := configurarApp(t)
	idExamen := crearExamen(t)

	resp, cuerpo := hacer(t, app, "GET", "/api/exams", "", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("listar exámenes: status = %d", resp.StatusCode)
	}

	var examenes []models.Examen
	if err := json.Unmarshal(cuerpo, &examenes); err != nil {
		t.Fatalf("decodificar exámenes: %v", err)
	}

	encontrado := false
	for _, examen := range examenes {
		if examen.ID == idExamen {
			encontrado = true
		}
	}
	if !encontrado {
		t.Error("el listado debe incluir el examen de prueba")
	}
}

func TestCrearExamenInvalidaCache(t *testing.T) {
	app := configurarApp(t)
	_, tokenAdmin := crearUsuario(t, models.RolAdmin)

	// Primera lectura puebla el caché
	resp, _ := hacer(t, app, "GET", "/api/exams", "", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("listar exámenes: status = %d", resp.StatusCode)
	}

	resp, cuerpo := hacer(t, app, "POST", "/api/exams", tokenAdmin, fiber.Map{
		"name":      "Examen Nuevo de Prueba",
		"specialty": "Pruebas",
	})
	if resp.StatusCode != 201 {
		t.Fatalf("crear examen: status = %d, cuerpo = %s", resp.StatusCode, cuerpo)
	}
	var creado struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(cuerpo, &creado); err != nil {
		t.Fatalf("decodificar respuesta: %v", err)
	}
	t.Cleanup(func() { eliminarExamen(t, app, tokenAdmin, creado.ID) })

	// La invalidación es síncrona: la siguiente lectura ya trae el nuevo
	resp, cuerpo = hacer(t, app, "GET", "/api/exams", "", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("listar exámenes: status = %d", resp.StatusCode)
	}
	var examenes []models.Examen
	if err := json.Unmarshal(cuerpo, &examenes); err != nil {
		t.Fatalf("decodificar exámenes: %v", err)
	}
	encontrado := false
	for _, examen := range examenes {
		if examen.ID == creado.ID {
			encontrado = true
		}
	}
	if !encontrado {
		t.Error("el examen recién creado debe aparecer en la lectura siguiente")
	}
}

func eliminarExamen(t *testing.T, app *fiber.App, tokenAdmin string, id int) {
	t.Helper()
	hacer(t, app, "DELETE", fmt.Sprintf("/api/exams/%d", id), tokenAdmin, nil)
}

func TestCrearExamenRequiereAdmin(t *testing.T) {
	app := configurarApp(t)
	_, tokenPaciente := crearUsuario(t, models.RolPaciente)

	resp, _ := hacer(t, app, "POST", "/api/exams", tokenPaciente, fiber.Map{
		"name":      "No Debería Existir",
		"specialty": "Pruebas",
	})
	if resp.StatusCode != 403 {
		t.Errorf("un paciente no crea exámenes: status = %d, quiere 403", resp.StatusCode)
	}
}

func TestActualizarExamenInexistente(t *testing.T) {
	app := configurarApp(t)
	_, tokenAdmin := crearUsuario(t, models.RolAdmin)

	resp, _ := hacer(t, app, "PUT", "/api/exams/9999999", tokenAdmin, fiber.Map{
		"name":      "Fantasma",
		"specialty": "Pruebas",
	})
	if resp.StatusCode != 404 {
		t.Errorf("status = %d, quiere 404", resp.StatusCode)
	}
}

func TestCrearExamenValidaciones(t *testing.T) {
	app := configurarApp(t)
	_, tokenAdmin := crearUsuario(t, models.RolAdmin)

	tests := []struct {
		nombre string
		cuerpo fiber.Map
	}{
		{"sin nombre", fiber.Map{"specialty": "Pruebas"}},
		{"sin especialidad", fiber.Map{"name": "Examen"}},
	}
	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			resp, _ := hacer(t, app, "POST", "/api/exams", tokenAdmin, tt.cuerpo)
			if resp.StatusCode != 400 {
				t.Errorf("status = %d, quiere 400", resp.StatusCode)
			}
		})
	}
}
