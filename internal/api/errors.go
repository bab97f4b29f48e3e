package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized casa (via errors.Is) com qualquer resposta 401 da API.
var ErrUnauthorized = errors.New("api: unauthorized")

// APIError: a API respondeu com status de erro.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// NetworkError: a requisição saiu mas nenhuma resposta voltou
// (timeout, conexão recusada, DNS).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("api: %s: no response: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RequestError: falha local, ao montar a requisição ou ao ler a resposta.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("api: %s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

type Kind int

const (
	KindNone Kind = iota
	KindAPI
	KindNetwork
	KindUnexpected
)

// Classify separa um erro nos três casos que a interface trata de forma
// distinta. Qualquer erro que não seja da API ou de rede é inesperado.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return KindAPI
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return KindNetwork
	}
	return KindUnexpected
}

// Message devolve a mensagem enviada pelo servidor, se houver.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// MessageOr é Message com um texto padrão para quando o servidor não
// mandou nenhum.
func MessageOr(err error, fallback string) string {
	if msg := Message(err); msg != "" {
		return msg
	}
	return fallback
}
