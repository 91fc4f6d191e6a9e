package handlers

import (
	"github.com/aspect-hospital/agenda-backend/cache"
	"github.com/aspect-hospital/agenda-backend/correo"
)

// Handler agrupa los handlers HTTP con sus dependencias construidas en el
// arranque: el caché de lectura y el notificador de correo se inyectan
// explícitamente, no viven como globales del proceso.
type Handler struct {
	Cache  *cache.Cache
	Correo correo.Notificador
}

// New construye el conjunto de handlers
func New(c *cache.Cache, n correo.Notificador) *Handler {
	return &Handler{Cache: c, Correo: n}
}
