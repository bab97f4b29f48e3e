package theme

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/psique-web/internal/storage"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == Light || t == Dark
}

type Holder struct {
	store   storage.Store
	current Theme
}

func NewHolder(store storage.Store) *Holder {
	return &Holder{store: store, current: Light}
}

// Hydrate lê a preferência salva. Valor ausente ou desconhecido vira
// "light" e é regravado.
func (h *Holder) Hydrate(ctx context.Context) error {
	raw, err := h.store.Get(ctx, storage.KeyTheme)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if t := Theme(raw); t.Valid() {
		h.current = t
		return nil
	}
	h.current = Light
	return h.store.Set(ctx, storage.KeyTheme, string(Light))
}

func (h *Holder) Current() Theme {
	return h.current
}

// Toggle alterna e persiste.
func (h *Holder) Toggle(ctx context.Context) (Theme, error) {
	next := Dark
	if h.current == Dark {
		next = Light
	}
	if err := h.store.Set(ctx, storage.KeyTheme, string(next)); err != nil {
		return h.current, err
	}
	h.current = next
	return next, nil
}
