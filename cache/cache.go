// Package cache implementa el caché de lectura en memoria que se interpone
// ante el catálogo. Se construye explícitamente en el arranque y se inyecta
// a los handlers; el catálogo debe funcionar igual si el caché nunca acierta.
package cache

import (
	"log"
	"sync"
	"time"
)

// Claves de caché
const (
	ClaveExamenes = "exams"
	ClaveUsuarios = "users"
)

// TTLPorDefecto es la vigencia de una entrada si no se indica otra
const TTLPorDefecto = 5 * time.Minute

type entrada struct {
	valor  interface{}
	expira time.Time
}

// Cache es un almacén clave→valor con expiración por entrada. Sus
// operaciones son atómicas por clave.
type Cache struct {
	mu       sync.RWMutex
	entradas map[string]entrada
	ttl      time.Duration
	ahora    func() time.Time

	hits   int
	misses int
}

// New crea un caché con el TTL por defecto indicado
func New(ttl time.Duration) *Cache {
	return NewConReloj(ttl, time.Now)
}

// NewConReloj permite inyectar el reloj, para pruebas con expiración
// determinista
func NewConReloj(ttl time.Duration, ahora func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = TTLPorDefecto
	}
	return &Cache{
		entradas: make(map[string]entrada),
		ttl:      ttl,
		ahora:    ahora,
	}
}

// Get devuelve el valor si existe y no expiró; el llamador debe repoblar
// el caché ante un miss
func (c *Cache) Get(clave string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entradas[clave]
	if !ok || c.ahora().After(e.expira) {
		if ok {
			delete(c.entradas, clave)
		}
		c.misses++
		log.Printf("[Cache] MISS: %s", clave)
		return nil, false
	}
	c.hits++
	log.Printf("[Cache] HIT: %s", clave)
	return e.valor, true
}

// Set guarda un valor con el TTL por defecto
func (c *Cache) Set(clave string, valor interface{}) {
	c.SetConTTL(clave, valor, c.ttl)
}

// SetConTTL guarda un valor con una vigencia específica
func (c *Cache) SetConTTL(clave string, valor interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	log.Printf("[Cache] SET: %s", clave)
	c.entradas[clave] = entrada{valor: valor, expira: c.ahora().Add(ttl)}
}

// Delete invalida una clave. Toda escritura del catálogo debe llamarla de
// forma síncrona antes de responder.
func (c *Cache) Delete(clave string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	log.Printf("[Cache] DEL: %s", clave)
	delete(c.entradas, clave)
}

// Flush vacía el caché completo
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entradas = make(map[string]entrada)
}

// Stats son los contadores de uso del caché
type Stats struct {
	Entradas int `json:"entradas"`
	Hits     int `json:"hits"`
	Misses   int `json:"misses"`
}

// Stats devuelve los contadores actuales
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{Entradas: len(c.entradas), Hits: c.hits, Misses: c.misses}
}
