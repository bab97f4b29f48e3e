package storage

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrCorrupt = errors.New("storage: sealed value could not be opened")

type sealed struct {
	inner Store
	key   [32]byte
}

// Sealed cifra os valores antes de entregá-los ao Store de baixo. A chave é
// derivada do segredo com SHA-256.
func Sealed(inner Store, secret string) Store {
	return &sealed{inner: inner, key: sha256.Sum256([]byte(secret))}
}

func (s *sealed) Get(ctx context.Context, key string) (string, error) {
	raw, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}
	box, err := base64.RawStdEncoding.DecodeString(raw)
	if err != nil || len(box) < nonceSize {
		return "", ErrCorrupt
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrCorrupt
	}
	return string(plain), nil
}

func (s *sealed) Set(ctx context.Context, key, value string) error {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return fmt.Errorf("storage: nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(value), &nonce, &s.key)
	return s.inner.Set(ctx, key, base64.RawStdEncoding.EncodeToString(box))
}

func (s *sealed) Remove(ctx context.Context, keys ...string) error {
	return s.inner.Remove(ctx, keys...)
}

func (s *sealed) Ping(ctx context.Context) error {
	return Ping(ctx, s.inner)
}
