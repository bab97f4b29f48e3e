package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/psique-web/internal/form"
	"github.com/BruksfildServices01/psique-web/internal/models"
)

const (
	MsgSessionSaved  = "Sessão salva com sucesso"
	MsgSessionFailed = "Não foi possível salvar a sessão. Tente novamente mais tarde."
	MsgPatientIDLost = "ID do paciente não encontrado. Tente novamente."
)

var ErrPatientMissing = errors.New("schedule: session without patient id")

// SessionForm registra o resultado de uma consulta. Pagamento só existe se
// o paciente compareceu; valor só existe se houve pagamento.
type SessionForm struct {
	Attended      bool
	PaymentMade   bool
	PaymentAmount string
	Notes         string
}

// SetAttended(false) zera pagamento e valor.
func (f *SessionForm) SetAttended(v bool) {
	f.Attended = v
	if !v {
		f.PaymentMade = false
		f.PaymentAmount = ""
	}
}

// SetPaymentMade(false) zera só o valor. Sem comparecimento o campo não
// pode ser marcado.
func (f *SessionForm) SetPaymentMade(v bool) {
	if v && !f.Attended {
		return
	}
	f.PaymentMade = v
	if !v {
		f.PaymentAmount = ""
	}
}

// SetPaymentAmount aplica a máscara de reais.
func (f *SessionForm) SetPaymentAmount(raw string) {
	if !f.PaymentMade {
		return
	}
	f.PaymentAmount = form.FormatCurrency(raw)
}

// Input monta o corpo enviado à API com a data de envio.
func (f SessionForm) Input(now time.Time) models.SessionRecordInput {
	in := models.SessionRecordInput{
		Date:        now.UTC(),
		Attended:    f.Attended,
		PaymentMade: f.PaymentMade,
		Notes:       f.Notes,
	}
	if f.PaymentMade {
		if v, ok := form.ParseCurrency(f.PaymentAmount); ok {
			in.PaymentAmount = &v
		}
	}
	return in
}

type SessionWriter interface {
	CreatePatientSession(ctx context.Context, patientID uint, in models.SessionRecordInput) error
}

// SubmitSession cria um novo registro de sessão. Cada envio é um registro
// novo.
func SubmitSession(ctx context.Context, w SessionWriter, patientID uint, f SessionForm, now time.Time) error {
	if patientID == 0 {
		return ErrPatientMissing
	}
	return w.CreatePatientSession(ctx, patientID, f.Input(now))
}

// SessionFailureMessage traduz o erro de SubmitSession para o toast.
func SessionFailureMessage(err error) string {
	if errors.Is(err, ErrPatientMissing) {
		return MsgPatientIDLost
	}
	return MsgSessionFailed
}
