// Package cache guarda temporalmente los PDF listos para descargar.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/cotizaciones-web/internal/application/ports"
	"github.com/jhoicas/cotizaciones-web/internal/domain"
)

// MemoryStore implementa ports.DocumentStore en memoria del proceso.
// Se usa cuando no hay Redis configurado; un janitor purga las entradas
// vencidas cada intervalo de limpieza.
type MemoryStore struct {
	items *gocache.Cache
}

var _ ports.DocumentStore = (*MemoryStore)(nil)

// NewMemoryStore construye un store vacío que purga vencidos cada limpieza.
func NewMemoryStore(limpieza time.Duration) *MemoryStore {
	return &MemoryStore{items: gocache.New(gocache.NoExpiration, limpieza)}
}

// Put guarda doc durante ttl y devuelve el token para recuperarlo.
func (s *MemoryStore) Put(_ context.Context, doc ports.Documento, ttl time.Duration) (string, error) {
	if err := validarTTL(ttl); err != nil {
		return "", err
	}
	token := uuid.NewString()
	s.items.Set(token, doc, ttl)
	return token, nil
}

// Get recupera el documento; domain.ErrNotFound si no existe o expiró.
func (s *MemoryStore) Get(_ context.Context, token string) (*ports.Documento, error) {
	v, ok := s.items.Get(token)
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc := v.(ports.Documento)
	return &doc, nil
}

// validarTTL rechaza duraciones que vencerían el documento al guardarlo.
func validarTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("%w: ttl de descarga %s", domain.ErrInvalidInput, ttl)
	}
	return nil
}
