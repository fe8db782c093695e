package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/cotizaciones-web/internal/application/ports"
	"github.com/jhoicas/cotizaciones-web/internal/domain"
)

const prefijoDescarga = "descarga:"

// RedisConfig parámetros de conexión.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ConnectRedis abre el cliente y verifica la conexión con un PING.
func ConnectRedis(cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping redis: %w", err)
	}
	return client, nil
}

// RedisStore implementa ports.DocumentStore guardando cada documento como un
// hash (nombre, contenido) con expiración.
type RedisStore struct {
	client redis.UniversalClient
}

var _ ports.DocumentStore = (*RedisStore)(nil)

// NewRedisStore construye el store sobre un cliente ya conectado.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// Put guarda doc durante ttl y devuelve el token para recuperarlo.
func (s *RedisStore) Put(ctx context.Context, doc ports.Documento, ttl time.Duration) (string, error) {
	if err := validarTTL(ttl); err != nil {
		return "", err
	}
	token := uuid.NewString()
	key := prefijoDescarga + token
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key, "nombre", doc.Nombre, "contenido", doc.Contenido)
		p.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("cache: guardar descarga: %w", err)
	}
	return token, nil
}

// Get recupera el documento; domain.ErrNotFound si no existe o expiró.
func (s *RedisStore) Get(ctx context.Context, token string) (*ports.Documento, error) {
	vals, err := s.client.HGetAll(ctx, prefijoDescarga+token).Result()
	if err != nil {
		return nil, fmt.Errorf("cache: leer descarga: %w", err)
	}
	contenido, ok := vals["contenido"]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ports.Documento{Nombre: vals["nombre"], Contenido: []byte(contenido)}, nil
}
