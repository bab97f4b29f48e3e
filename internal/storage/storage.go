// Package storage guarda no servidor o estado de cada visitante (sessão e
// tema), indexado pelo cookie de visitante.
package storage

import (
	"context"
	"errors"
)

// Chaves persistidas. Nenhum outro estado é gravado.
const (
	KeyUser  = "@psiqueapp:user"
	KeyToken = "@psiqueapp:token"
	KeyTheme = "@psiqueapp:theme"
)

var ErrNotFound = errors.New("storage: key not found")

// Store é um mapa chave/valor seguro para uso concorrente.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}

type scoped struct {
	inner  Store
	prefix string
}

// Scoped isola as chaves de um visitante dentro de um Store compartilhado.
func Scoped(inner Store, visitorID string) Store {
	return &scoped{inner: inner, prefix: "visitor:" + visitorID + ":"}
}

func (s *scoped) Get(ctx context.Context, key string) (string, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *scoped) Remove(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.prefix + k
	}
	return s.inner.Remove(ctx, full...)
}

// Pinger é implementado pelos drivers que dependem de um serviço externo.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping verifica o driver por baixo de s, se ele souber responder.
func Ping(ctx context.Context, s Store) error {
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
