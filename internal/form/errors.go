// Package form reúne o que toda tela de formulário usa: erros por campo,
// máscaras e parsers de data, hora, dinheiro e telefone.
package form

// Errors mapeia nome do campo para a mensagem exibida abaixo dele.
type Errors map[string]string

func (e Errors) Set(field, message string) {
	e[field] = message
}

func (e Errors) Get(field string) string {
	return e[field]
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Clear remove o erro de um campo quando o usuário volta a editá-lo.
func (e Errors) Clear(field string) {
	delete(e, field)
}

func (e Errors) Any() bool {
	return len(e) > 0
}
