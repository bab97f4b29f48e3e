package schedule

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/BruksfildServices01/psique-web/internal/api"
	"github.com/BruksfildServices01/psique-web/internal/form"
	"github.com/BruksfildServices01/psique-web/internal/models"
	"github.com/BruksfildServices01/psique-web/pkg/logging"
)

type Modality string

const (
	Presencial Modality = "presencial"
	Online     Modality = "online"
)

const (
	MsgPatientRequired = "Selecione um paciente"
	MsgDateRequired    = "Selecione a data da consulta"
	MsgDateInPast      = "A data da consulta não pode ser anterior a hoje"
	MsgTimeRequired    = "Selecione a hora da consulta"

	msgSaveFailedReason  = "Não foi possível salvar o agendamento. Motivo: %s"
	msgSaveFailedNetwork = "Não foi possível salvar o agendamento. Verifique sua conexão com a internet ou tente novamente mais tarde."
	msgSaveFailedUnknown = "Ocorreu um erro inesperado. Por favor, tente novamente."
	msgNoReason          = "Erro inesperado."
)

// ErrInvalid indica que o formulário não passou na validação; os erros por
// campo ficam no Modal.
var ErrInvalid = errors.New("schedule: invalid appointment form")

// AppointmentForm é o estado serializável do modal de agendamento.
// ScheduleID zero significa criação.
type AppointmentForm struct {
	ScheduleID  uint
	PatientID   uint
	PatientName string
	Date        string // AAAA-MM-DD
	Time        string // HH:MM
	Modality    Modality
}

// NewAppointment: valores iniciais do modal de criação de um dia.
func NewAppointment(day time.Time) AppointmentForm {
	return AppointmentForm{
		Date:     day.Format(form.LayoutISODate),
		Modality: Presencial,
	}
}

// EditAppointment pré-preenche o modal com um agendamento existente.
func EditAppointment(s models.Schedule, loc *time.Location) AppointmentForm {
	day, hhmm := form.SplitDateTime(s.ScheduleDateTime, loc)
	m := Online
	if s.IsPresencial {
		m = Presencial
	}
	return AppointmentForm{
		ScheduleID:  s.ID,
		PatientID:   s.PatientID,
		PatientName: s.PatientName,
		Date:        day.Format(form.LayoutISODate),
		Time:        hhmm,
		Modality:    m,
	}
}

func (f AppointmentForm) IsEdit() bool {
	return f.ScheduleID != 0
}

func (f AppointmentForm) Presencial() bool {
	return f.Modality != Online
}

// Validate roda as três verificações de forma independente. today define
// o fuso e o dia mínimo aceito.
func (f AppointmentForm) Validate(today time.Time) form.Errors {
	errs := form.Errors{}

	if f.PatientID == 0 {
		errs.Set("patient", MsgPatientRequired)
	}

	if f.Date == "" {
		errs.Set("date", MsgDateRequired)
	} else if d, err := form.ParseISODate(f.Date, today.Location()); err != nil {
		errs.Set("date", MsgDateRequired)
	} else if DayKey(d, today.Location()) < DayKey(today, today.Location()) {
		errs.Set("date", MsgDateInPast)
	}

	if !form.IsValidTime(f.Time) {
		errs.Set("time", MsgTimeRequired)
	}
	return errs
}

// Instant combina data e hora num único instante em loc.
func (f AppointmentForm) Instant(loc *time.Location) (time.Time, error) {
	d, err := form.ParseISODate(f.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return form.CombineDateTime(d, f.Time, loc)
}

func (f AppointmentForm) key() string {
	return fmt.Sprintf("%d|%d|%s|%s|%s", f.ScheduleID, f.PatientID, f.Date, f.Time, f.Modality)
}

// ======================================================
// MODAL
// ======================================================

type State int

const (
	Closed State = iota
	Open
	Submitting
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Submitting:
		return "submitting"
	default:
		return "closed"
	}
}

// Modal é a máquina de estados do modal de agendamento. Fechar sem salvar
// volta ao formulário inicial: vazio na criação, o agendamento original na
// edição.
type Modal struct {
	State  State
	Form   AppointmentForm
	Errors form.Errors

	initial AppointmentForm
}

func NewModal(initial AppointmentForm) *Modal {
	return &Modal{
		State:   Closed,
		Form:    initial,
		Errors:  form.Errors{},
		initial: initial,
	}
}

// Open sempre parte do estado fechado.
func (m *Modal) Open() {
	m.reset()
	m.State = Open
}

func (m *Modal) Cancel() {
	m.reset()
}

func (m *Modal) reset() {
	m.State = Closed
	m.Form = m.initial
	m.Errors = form.Errors{}
}

func (m *Modal) Mode() string {
	if m.initial.IsEdit() {
		return "edit"
	}
	return "create"
}

// Edit altera um campo e limpa o erro dele. O paciente de um agendamento
// existente não muda.
func (m *Modal) Edit(field, value string) {
	switch field {
	case "patient":
		if m.initial.IsEdit() {
			return
		}
		id, _ := strconv.ParseUint(value, 10, 64)
		m.Form.PatientID = uint(id)
	case "date":
		m.Form.Date = value
	case "time":
		m.Form.Time = value
	case "modality":
		if Modality(value) == Online {
			m.Form.Modality = Online
		} else {
			m.Form.Modality = Presencial
		}
	default:
		return
	}
	m.Errors.Clear(field)
}

// SaveFunc persiste o formulário validado.
type SaveFunc func(ctx context.Context, f AppointmentForm) error

// Submit valida e salva. Em caso de sucesso o modal volta ao estado inicial
// fechado e quem chamou deve buscar a lista de novo. Falhas de validação
// devolvem ErrInvalid; falhas de gravação devolvem *Failure. Nos dois casos
// o modal continua aberto com o que foi digitado.
func (m *Modal) Submit(ctx context.Context, today time.Time, save SaveFunc) error {
	if m.State == Closed {
		m.State = Open
	}
	if m.initial.IsEdit() {
		m.Form.ScheduleID = m.initial.ScheduleID
		m.Form.PatientID = m.initial.PatientID
	}

	m.Errors = m.Form.Validate(today)
	if m.Errors.Any() {
		return ErrInvalid
	}

	m.State = Submitting
	if err := save(ctx, m.Form); err != nil {
		m.State = Open
		return NewFailure(err)
	}

	m.reset()
	return nil
}

// ======================================================
// FAILURE
// ======================================================

// Failure descreve uma gravação que falhou, já com a mensagem para o
// usuário.
type Failure struct {
	Kind    api.Kind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func NewFailure(err error) *Failure {
	var existing *Failure
	if errors.As(err, &existing) {
		return existing
	}

	kind := api.Classify(err)
	f := &Failure{Kind: kind, Err: err}
	switch kind {
	case api.KindAPI:
		reason := api.Message(err)
		if reason == "" {
			reason = msgNoReason
		}
		f.Message = fmt.Sprintf(msgSaveFailedReason, reason)
	case api.KindNetwork:
		f.Message = msgSaveFailedNetwork
	default:
		f.Message = msgSaveFailedUnknown
	}
	return f
}

// ======================================================
// SUBMITTER
// ======================================================

// Writer é o lado de escrita da API de agendamentos.
type Writer interface {
	CreateSchedule(ctx context.Context, in models.CreateScheduleInput) error
	UpdateSchedule(ctx context.Context, id uint, in models.UpdateScheduleInput) error
}

const saveTimeout = 30 * time.Second

// Submitter grava agendamentos. Envios idênticos e simultâneos do mesmo
// visitante viram uma única chamada à API.
type Submitter struct {
	group  singleflight.Group
	loc    *time.Location
	logger *logging.Logger
}

func NewSubmitter(loc *time.Location, logger *logging.Logger) *Submitter {
	if logger == nil {
		logger = logging.Default()
	}
	return &Submitter{loc: loc, logger: logger}
}

// For devolve a SaveFunc de um visitante.
func (s *Submitter) For(visitorID string, w Writer) SaveFunc {
	return func(ctx context.Context, f AppointmentForm) error {
		_, err, shared := s.group.Do(visitorID+"|"+f.key(), func() (any, error) {
			// o voo é compartilhado: cancelar a requisição que o abriu não
			// pode derrubar as que esperam por ele
			sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
			defer cancel()
			return nil, s.save(sctx, w, f)
		})
		if shared {
			s.logger.Info("duplicate appointment submission collapsed",
				"visitor_id", visitorID,
				"schedule_id", f.ScheduleID,
			)
		}
		return err
	}
}

func (s *Submitter) save(ctx context.Context, w Writer, f AppointmentForm) error {
	at, err := f.Instant(s.loc)
	if err != nil {
		return err
	}

	if f.IsEdit() {
		err = w.UpdateSchedule(ctx, f.ScheduleID, models.UpdateScheduleInput{
			ScheduleDateTime: at,
			IsPresencial:     f.Presencial(),
		})
	} else {
		err = w.CreateSchedule(ctx, models.CreateScheduleInput{
			PatientID:        f.PatientID,
			ScheduleDateTime: at,
			IsPresencial:     f.Presencial(),
		})
	}

	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			s.logger.Error("saving appointment",
				"status", apiErr.Status,
				"message", apiErr.Message,
			)
		} else {
			s.logger.Error("saving appointment", "error", err)
		}
	}
	return err
}
