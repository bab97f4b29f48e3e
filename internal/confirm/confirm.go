package confirm

import "context"

const DefaultDescription = "Esta ação não pode ser desfeita"

// Action é a operação protegida. O resultado é de quem a forneceu.
type Action func(ctx context.Context) error

// Dialog só controla a apresentação: aberto ou fechado, com qual texto.
type Dialog struct {
	Message     string
	Description string
	Target      string // rota que recebe o POST de confirmação
	CancelURL   string
	Open        bool

	action Action
}

func New(message, target, cancelURL string, action Action) *Dialog {
	return &Dialog{
		Message:     message,
		Description: DefaultDescription,
		Target:      target,
		CancelURL:   cancelURL,
		action:      action,
	}
}

func (d *Dialog) Show() {
	d.Open = true
}

func (d *Dialog) Cancel() {
	d.Open = false
}

// Confirm fecha o diálogo e executa a ação, devolvendo o erro dela sem
// alteração.
func (d *Dialog) Confirm(ctx context.Context) error {
	d.Open = false
	if d.action == nil {
		return nil
	}
	return d.action(ctx)
}
