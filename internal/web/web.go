package web

import (
	"embed"
	"html/template"
	"strconv"
	"strings"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"id": func(v uint) string {
		return strconv.FormatUint(uint64(v), 10)
	},
	"initial": func(name string) string {
		name = strings.TrimSpace(name)
		if name == "" {
			return "?"
		}
		return strings.ToUpper(string([]rune(name)[:1]))
	},
}

// Templates carrega todos os templates. O layout se chama "base".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}
