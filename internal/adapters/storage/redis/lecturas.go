// Package redis guarda el estado leído de las notificaciones derivadas.
// Un set por usuario: notificaciones:leidas:<usuario_id>.
package redis

import (
	"context"
	"strings"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "notificaciones:leidas:"

// NewClient crea el cliente desde una URL redis:// y valida la conexión.
func NewClient(ctx context.Context, redisURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

type LecturasRepo struct {
	rdb goredis.UniversalClient
}

func NewLecturasRepo(rdb goredis.UniversalClient) *LecturasRepo {
	return &LecturasRepo{rdb: rdb}
}

func key(usuarioID string) string {
	return keyPrefix + strings.TrimSpace(usuarioID)
}

func (r *LecturasRepo) Marcar(ctx context.Context, usuarioID string, ids ...string) error {
	members := make([]any, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			members = append(members, id)
		}
	}
	if len(members) == 0 {
		return nil
	}
	return r.rdb.SAdd(ctx, key(usuarioID), members...).Err()
}

func (r *LecturasRepo) Leidas(ctx context.Context, usuarioID string) (map[string]bool, error) {
	ids, err := r.rdb.SMembers(ctx, key(usuarioID)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
