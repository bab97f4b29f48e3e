package form

// Option é um item de <select>.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// ToggleButton é um botão de um grupo exclusivo (radio estilizado).
type ToggleButton struct {
	Name    string
	Value   string
	Checked bool
}

// Options monta as opções de um select a partir de qualquer coleção.
func Options[T any](items []T, value func(T) string, label func(T) string, selected string) []Option {
	out := make([]Option, 0, len(items))
	for _, it := range items {
		v := value(it)
		out = append(out, Option{Value: v, Label: label(it), Selected: v == selected})
	}
	return out
}

// Toggle marca o botão cujo valor é current.
func Toggle(current string, buttons ...ToggleButton) []ToggleButton {
	out := make([]ToggleButton, len(buttons))
	for i, b := range buttons {
		b.Checked = b.Value == current
		out[i] = b
	}
	return out
}

// YesNo é o grupo Sim/Não usado no registro de sessão.
func YesNo(current bool) []ToggleButton {
	v := "false"
	if current {
		v = "true"
	}
	return Toggle(v,
		ToggleButton{Name: "Sim", Value: "true"},
		ToggleButton{Name: "Não", Value: "false"},
	)
}
