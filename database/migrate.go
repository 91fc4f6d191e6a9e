package database

import (
	"context"
	"log"
)

// esquema idempotente; se aplica en cada arranque. La tabla Cita no lleva
// restricción de unicidad sobre (id_examen, fecha): dos reservas
// concurrentes del mismo turno son válidas.
const esquema = `
CREATE TABLE IF NOT EXISTS Usuario (
	id_usuario SERIAL PRIMARY KEY,
	nombre VARCHAR(150) NOT NULL,
	email VARCHAR(150) NOT NULL UNIQUE,
	password VARCHAR(255) NOT NULL,
	rol VARCHAR(20) NOT NULL DEFAULT 'patient',
	mfa_enabled BOOLEAN NOT NULL DEFAULT FALSE,
	mfa_secret TEXT NOT NULL DEFAULT '',
	codigos_respaldo TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS Examen (
	id_examen SERIAL PRIMARY KEY,
	nombre VARCHAR(150) NOT NULL,
	especialidad VARCHAR(100) NOT NULL,
	descripcion TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS Cita (
	id_cita SERIAL PRIMARY KEY,
	id_examen INTEGER NOT NULL REFERENCES Examen(id_examen),
	id_usuario INTEGER NOT NULL REFERENCES Usuario(id_usuario),
	fecha TIMESTAMP NOT NULL,
	estado VARCHAR(20) NOT NULL DEFAULT 'scheduled',
	notas TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS Log (
	id_log SERIAL PRIMARY KEY,
	method VARCHAR(10) NOT NULL,
	path VARCHAR(500) NOT NULL,
	status_code INTEGER NOT NULL,
	response_time INTEGER NOT NULL DEFAULT 0,
	user_agent TEXT,
	ip VARCHAR(45) NOT NULL DEFAULT '',
	body TEXT,
	email TEXT,
	role VARCHAR(20),
	log_level VARCHAR(20) NOT NULL DEFAULT 'info',
	environment VARCHAR(20) NOT NULL DEFAULT 'development',
	timestamp TIMESTAMP NOT NULL DEFAULT NOW()
);
`

// Migrar aplica el esquema al arranque
func Migrar() {
	if _, err := DB.Exec(context.Background(), esquema); err != nil {
		log.Fatalf("❌ Error al aplicar el esquema: %v", err)
	}
	log.Println("✅ Esquema de base de datos sincronizado")
}
