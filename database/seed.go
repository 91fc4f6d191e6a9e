package database

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
)

var examenesIniciales = []struct {
	Nombre       string
	Especialidad string
}{
	{"Hemograma Completo", "Hematología"},
	{"Radiografía de Tórax", "Radiología"},
	{"Ultrasonido Abdominal", "Radiología"},
	{"Electrocardiograma", "Cardiología"},
	{"Resonancia Magnética", "Radiología"},
	{"Prueba de Esfuerzo", "Cardiología"},
	{"Colonoscopia", "Gastroenterología"},
	{"Mamografía", "Radiología"},
}

// SembrarExamenes carga el catálogo inicial si la tabla está vacía
func SembrarExamenes() {
	ctx := context.Background()

	var total int
	if err := DB.QueryRow(ctx, "SELECT COUNT(*) FROM Examen").Scan(&total); err != nil {
		log.Printf("Error al contar exámenes: %v", err)
		return
	}
	if total > 0 {
		log.Println("Catálogo de exámenes ya existe, se omite el seed")
		return
	}

	for _, e := range examenesIniciales {
		_, err := DB.Exec(ctx,
			"INSERT INTO Examen (nombre, especialidad) VALUES ($1, $2)",
			e.Nombre, e.Especialidad)
		if err != nil {
			log.Printf("Error al sembrar examen %s: %v", e.Nombre, err)
			return
		}
	}
	log.Println("✅ Catálogo de exámenes sembrado")
}

// SembrarUsuarios crea el administrador inicial y un paciente de prueba
func SembrarUsuarios() {
	sembrarUsuario("Administrador", "admin@aspect.com", "admin123", "admin")
	sembrarUsuario("Usuario", "user@aspect.com", "admin123", "patient")
}

func sembrarUsuario(nombre, email, password, rol string) {
	ctx := context.Background()

	var existe int
	if err := DB.QueryRow(ctx, "SELECT COUNT(*) FROM Usuario WHERE email = $1", email).Scan(&existe); err != nil {
		log.Printf("Error al verificar usuario %s: %v", email, err)
		return
	}
	if existe > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error al generar hash para %s: %v", email, err)
		return
	}

	_, err = DB.Exec(ctx,
		"INSERT INTO Usuario (nombre, email, password, rol) VALUES ($1, $2, $3, $4)",
		nombre, email, string(hash), rol)
	if err != nil {
		log.Printf("Error al sembrar usuario %s: %v", email, err)
		return
	}
	log.Printf("✅ Usuario inicial creado: %s", email)
}
