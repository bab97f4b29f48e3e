// Package patients reúne o formulário e as mensagens das telas de paciente.
package patients

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/psique-web/internal/form"
	"github.com/BruksfildServices01/psique-web/internal/models"
)

const (
	MsgCreated      = "Paciente criado com sucesso"
	MsgUpdated      = "Paciente atualizado com sucesso"
	MsgDeleted      = "Paciente excluído com sucesso"
	MsgSaveFailed   = "Erro ao salvar paciente"
	MsgDeleteFailed = "Erro ao excluir paciente"
	MsgLoadFailed   = "Erro ao carregar as informações do paciente"

	MsgNameRequired      = "Nome é obrigatório"
	MsgBirthDateRequired = "Data de Nascimento é obrigatória"
	MsgBirthDateFormat   = "Data de Nascimento deve estar no formato DD/MM/YYYY"

	minNameLength = 3
)

// Form é o formulário de paciente como digitado: data DD/MM/AAAA e
// telefones com máscara.
type Form struct {
	Name        string
	Description string
	DateOfBirth string
	Phone       string
	Whatsapp    string
}

// FromPatient pré-preenche o formulário de edição.
func FromPatient(p models.Patient) Form {
	return Form{
		Name:        p.Name,
		Description: p.Description,
		DateOfBirth: form.ISODateToBR(p.DateOfBirth),
		Phone:       form.FormatPhone(p.Phone),
		Whatsapp:    form.FormatPhone(p.Whatsapp),
	}
}

func (f Form) Validate() form.Errors {
	errs := form.Errors{}
	if !form.MinLen(f.Name, minNameLength) {
		errs.Set("name", MsgNameRequired)
	}
	switch dob := strings.TrimSpace(f.DateOfBirth); {
	case dob == "":
		errs.Set("date_of_birth", MsgBirthDateRequired)
	case !form.IsValidBRDate(dob):
		errs.Set("date_of_birth", MsgBirthDateFormat)
	}
	return errs
}

// Input converte para o corpo da API: data ISO e telefones só com dígitos.
func (f Form) Input() models.PatientInput {
	return models.PatientInput{
		Name:        strings.TrimSpace(f.Name),
		Description: f.Description,
		DateOfBirth: form.BRDateToISO(f.DateOfBirth),
		Phone:       form.DigitsOnly(f.Phone),
		Whatsapp:    form.DigitsOnly(f.Whatsapp),
	}
}

func DeleteMessage(name string) string {
	return fmt.Sprintf("Tem certeza que deseja remover o paciente %s?", name)
}

// ======================================================
// VIEWS
// ======================================================

type Row struct {
	ID        uint
	Name      string
	BirthDate string
	EditURL   string
}

func Rows(list []models.Patient) []Row {
	out := make([]Row, 0, len(list))
	for _, p := range list {
		out = append(out, Row{
			ID:        p.ID,
			Name:      p.Name,
			BirthDate: form.ISODateToBR(p.DateOfBirth),
			EditURL:   "/patient/" + strconv.FormatUint(uint64(p.ID), 10),
		})
	}
	return out
}

type SessionView struct {
	Date     string
	Attended string
	Payment  string
	Amount   string
	Notes    string
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// Sessions formata o histórico na ordem recebida.
func Sessions(list []models.SessionRecord, loc *time.Location) []SessionView {
	out := make([]SessionView, 0, len(list))
	for _, s := range list {
		v := SessionView{
			Date:     s.CreatedAt.In(loc).Format(form.LayoutBRDate),
			Attended: yesNo(s.Attended),
			Payment:  yesNo(s.PaymentMade),
			Amount:   "Não informado",
			Notes:    "Sem notas",
		}
		if s.PaymentAmount != nil && *s.PaymentAmount != "" {
			v.Amount = "R$ " + *s.PaymentAmount
		}
		if s.Notes != nil && *s.Notes != "" {
			v.Notes = *s.Notes
		}
		out = append(out, v)
	}
	return out
}

// Detail é o que a página de um paciente mostra.
type Detail struct {
	Patient  models.Patient
	Phone    string
	Whatsapp string
	Sessions []SessionView
	Form     Form
}

type Source interface {
	GetPatient(ctx context.Context, id uint) (*models.Patient, error)
	ListPatientSessions(ctx context.Context, patientID uint) ([]models.SessionRecord, error)
}

// LoadDetail busca paciente e sessões em paralelo.
func LoadDetail(ctx context.Context, src Source, id uint, loc *time.Location) (*Detail, error) {
	var (
		patient  *models.Patient
		sessions []models.SessionRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		patient, err = src.GetPatient(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		sessions, err = src.ListPatientSessions(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Detail{
		Patient:  *patient,
		Phone:    form.FormatPhone(patient.Phone),
		Whatsapp: form.FormatPhone(patient.Whatsapp),
		Sessions: Sessions(sessions, loc),
		Form:     FromPatient(*patient),
	}, nil
}
