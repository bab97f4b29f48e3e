// Package auth guarda o usuário logado e o token de um visitante.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/psique-web/internal/api"
	"github.com/BruksfildServices01/psique-web/internal/models"
	"github.com/BruksfildServices01/psique-web/internal/storage"
	"github.com/BruksfildServices01/psique-web/pkg/logging"
)

// Navigation é um pedido de navegação devolvido a quem chamou. Full indica
// um carregamento completo da página, não um redirect parcial.
type Navigation struct {
	Path string
	Full bool
}

// Holder é o estado de autenticação de um visitante. Vive uma requisição:
// Hydrate lê o Store, SignIn/SignOut escrevem nele.
type Holder struct {
	store  storage.Store
	base   *api.Client
	logger *logging.Logger
	now    func() time.Time

	mu    sync.RWMutex
	user  *models.User
	token string
}

func NewHolder(store storage.Store, client *api.Client, logger *logging.Logger) *Holder {
	if logger == nil {
		logger = logging.Default()
	}
	return &Holder{
		store:  store,
		base:   client,
		logger: logger,
		now:    time.Now,
	}
}

// Hydrate restaura usuário e token apenas se as duas chaves existirem.
// Um JWT já expirado é descartado junto com as chaves.
func (h *Holder) Hydrate(ctx context.Context) error {
	token, err := h.store.Get(ctx, storage.KeyToken)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	rawUser, err := h.store.Get(ctx, storage.KeyUser)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		h.logger.Warn("discarding unreadable persisted user", "error", err)
		return h.Clear(ctx)
	}

	if h.expired(token) {
		h.logger.Info("persisted token expired", "user_id", user.ID)
		return h.Clear(ctx)
	}

	h.mu.Lock()
	h.user = &user
	h.token = token
	h.mu.Unlock()
	return nil
}

// expired só olha a claim exp. Tokens opacos (não JWT) nunca expiram aqui;
// a API responde 401 e o hook limpa a sessão.
func (h *Holder) expired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !h.now().Before(claims.ExpiresAt.Time)
}

// SignIn autentica na API e persiste a sessão.
func (h *Holder) SignIn(ctx context.Context, creds models.Credentials) (*models.User, error) {
	creds.Email = strings.TrimSpace(creds.Email)

	session, err := h.base.CreateSession(ctx, creds)
	if err != nil {
		if api.Classify(err) != api.KindAPI {
			h.logger.Error("sign in failed", "error", err)
		}
		return nil, err
	}

	rawUser, err := json.Marshal(session.User)
	if err != nil {
		return nil, err
	}
	if err := h.store.Set(ctx, storage.KeyUser, string(rawUser)); err != nil {
		return nil, err
	}
	if err := h.store.Set(ctx, storage.KeyToken, session.Token); err != nil {
		return nil, err
	}

	h.mu.Lock()
	user := session.User
	h.user = &user
	h.token = session.Token
	h.mu.Unlock()

	h.logger.Info("signed in", "user_id", user.ID)
	return &user, nil
}

// SignOut apaga a sessão e pede uma navegação completa para "/".
func (h *Holder) SignOut(ctx context.Context) (Navigation, error) {
	err := h.Clear(ctx)
	return Navigation{Path: "/", Full: true}, err
}

// Clear esquece usuário e token, em memória e no Store.
func (h *Holder) Clear(ctx context.Context) error {
	h.mu.Lock()
	h.user = nil
	h.token = ""
	h.mu.Unlock()
	return h.store.Remove(ctx, storage.KeyUser, storage.KeyToken)
}

func (h *Holder) User() *models.User {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.user == nil {
		return nil
	}
	u := *h.user
	return &u
}

func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *Holder) Authenticated() bool {
	return h.Token() != ""
}

// Client devolve o cliente da API com o token anexado. Qualquer 401 limpa
// a sessão deste visitante.
func (h *Holder) Client() *api.Client {
	return h.base.WithToken(h.Token(), func(ctx context.Context) {
		if err := h.Clear(context.WithoutCancel(ctx)); err != nil {
			h.logger.Error("clearing session after 401", "error", err)
		}
	})
}

// FailureMessage devolve o texto do toast para um login ou cadastro que
// falhou: a mensagem do servidor quando houver, senão fallback.
func FailureMessage(err error, fallback string) string {
	return api.MessageOr(err, fallback)
}
