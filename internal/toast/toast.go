// Package toast leva notificações de uma requisição para a próxima, através
// do redirect, num cookie de vida curta.
package toast

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	cookieName = "psique_flash"
	pendingKey = "toast.pending"

	// ContextSecureCookies é lido para decidir a flag Secure do cookie.
	ContextSecureCookies = "toast.secure"
)

type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
)

type Toast struct {
	Variant     Variant `json:"v"`
	Title       string  `json:"t"`
	Description string  `json:"d,omitempty"`
}

func Success(description string) Toast {
	return Toast{Variant: VariantSuccess, Title: "Success", Description: description}
}

func Error(description string) Toast {
	return Toast{Variant: VariantError, Title: "Erro", Description: description}
}

// Push agenda toasts para a próxima página renderizada, seja nesta
// requisição ou depois de um redirect.
func Push(c *gin.Context, ts ...Toast) {
	pending := append(pendingFrom(c), ts...)
	c.Set(pendingKey, pending)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, Encode(pending), 60, "/", "", c.GetBool(ContextSecureCookies), true)
}

// Pop devolve os toasts pendentes e limpa o cookie.
func Pop(c *gin.Context) []Toast {
	var out []Toast
	if raw, err := c.Cookie(cookieName); err == nil {
		out = append(out, Decode(raw)...)
	}
	out = append(out, pendingFrom(c)...)
	c.Set(pendingKey, []Toast(nil))
	if len(out) > 0 {
		c.SetCookie(cookieName, "", -1, "/", "", c.GetBool(ContextSecureCookies), true)
	}
	return dedupe(out)
}

func Encode(ts []Toast) string {
	b, err := json.Marshal(ts)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode ignora silenciosamente cookies adulterados.
func Decode(raw string) []Toast {
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var ts []Toast
	if err := json.Unmarshal(b, &ts); err != nil {
		return nil
	}
	return ts
}

func pendingFrom(c *gin.Context) []Toast {
	if v, ok := c.Get(pendingKey); ok {
		if ts, ok := v.([]Toast); ok {
			return ts
		}
	}
	return nil
}

// o cookie da requisição e a lista em contexto podem repetir o mesmo toast
func dedupe(ts []Toast) []Toast {
	seen := make(map[Toast]struct{}, len(ts))
	out := ts[:0]
	for _, t := range ts {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
