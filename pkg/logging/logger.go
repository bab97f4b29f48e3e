package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger é o logger estruturado compartilhado por todos os pacotes.
type Logger struct {
	*slog.Logger
}

// New cria um logger JSON no stdout com o nível informado.
func New(level string) *Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter cria um logger JSON que escreve em w.
func NewWithWriter(level string, w io.Writer) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return &Logger{Logger: slog.New(handler)}
}

// Default devolve um logger no nível info.
func Default() *Logger {
	return New("info")
}

// With devolve um logger filho com os atributos informados.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
