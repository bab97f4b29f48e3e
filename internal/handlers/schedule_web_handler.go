package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/psique-web/internal/api"
	"github.com/BruksfildServices01/psique-web/internal/audit"
	"github.com/BruksfildServices01/psique-web/internal/confirm"
	"github.com/BruksfildServices01/psique-web/internal/form"
	"github.com/BruksfildServices01/psique-web/internal/httperr"
	"github.com/BruksfildServices01/psique-web/internal/middleware"
	"github.com/BruksfildServices01/psique-web/internal/schedule"
	"github.com/BruksfildServices01/psique-web/internal/timezone"
	"github.com/BruksfildServices01/psique-web/internal/toast"
	"github.com/BruksfildServices01/psique-web/pkg/logging"
)

const (
	msgBoardLoadFailed = "Não foi possível carregar os agendamentos."
	msgDeleteFailed    = "Não foi possível excluir o agendamento."
)

type ScheduleWebHandler struct {
	loc       *time.Location
	signature string
	submitter *schedule.Submitter
	audit     *audit.Dispatcher
	logger    *logging.Logger
}

func NewScheduleWebHandler(
	loc *time.Location,
	signature string,
	submitter *schedule.Submitter,
	dispatcher *audit.Dispatcher,
	logger *logging.Logger,
) *ScheduleWebHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleWebHandler{
		loc:       loc,
		signature: signature,
		submitter: submitter,
		audit:     dispatcher,
		logger:    logger,
	}
}

func (h *ScheduleWebHandler) today() time.Time {
	return timezone.Today(h.loc)
}

type sessionModalView struct {
	ScheduleID  uint
	PatientID   uint
	PatientName string
	Form        schedule.SessionForm
	Attended    []form.ToggleButton
	PaymentMade []form.ToggleButton
	Action      string
}

// ======================================================
// BOARD
// ======================================================

// Board lista a janela de agendamentos. Os modais são abertos por query:
// ?modal=new&day=AAAA-MM-DD, ?modal=edit&id=N, ?modal=session&id=N e
// ?confirm=N para a exclusão.
func (h *ScheduleWebHandler) Board(c *gin.Context) {
	board, ok := h.load(c)
	if !ok {
		return
	}

	data := gin.H{"Board": board}

	switch c.Query("modal") {
	case "new":
		if day, found := board.Day(c.Query("day")); found {
			m := schedule.NewModal(day.New)
			m.Open()
			h.withModal(data, board, m, "/schedules")
		}
	case "edit":
		if row, found := board.Row(queryID(c, "id")); found {
			m := schedule.NewModal(row.Edit)
			m.Open()
			h.withModal(data, board, m, "/schedules/"+strconv.FormatUint(uint64(row.ID), 10))
		}
	case "session":
		if row, found := board.Row(queryID(c, "id")); found {
			data["SessionModal"] = newSessionModal(row, schedule.SessionForm{})
		}
	}

	if row, found := board.Row(queryID(c, "confirm")); found {
		d := confirm.New(row.DeleteMessage, "/schedules/"+strconv.FormatUint(uint64(row.ID), 10)+"/delete", "/schedules", nil)
		d.Show()
		data["Confirm"] = d
	}

	render(c, http.StatusOK, "schedules", "Agendamentos", data)
}

// load busca o quadro. Falha que não seja 401 mostra a janela vazia com
// um toast de erro.
func (h *ScheduleWebHandler) load(c *gin.Context) (*schedule.Board, bool) {
	client := middleware.Auth(c).Client()
	board, err := schedule.Load(c.Request.Context(), client, h.today(), h.signature)
	if err != nil {
		if unauthorized(c, err) {
			return nil, false
		}
		h.logger.Error("loading schedule board", "visitor_id", middleware.VisitorID(c), "error", err)
		toast.Push(c, toast.Error(msgBoardLoadFailed))
		board = schedule.BuildBoard(nil, nil, h.today(), h.signature)
	}
	return board, true
}

func (h *ScheduleWebHandler) withModal(data gin.H, board *schedule.Board, m *schedule.Modal, action string) {
	data["Modal"] = m
	data["ModalAction"] = action
	data["ModalPatients"] = board.PatientOptions(m.Form.PatientID)
	data["ModalModality"] = form.Toggle(string(m.Form.Modality),
		form.ToggleButton{Name: "Presencial", Value: string(schedule.Presencial)},
		form.ToggleButton{Name: "Online", Value: string(schedule.Online)},
	)
}

func newSessionModal(row *schedule.Row, f schedule.SessionForm) *sessionModalView {
	return &sessionModalView{
		ScheduleID:  row.ID,
		PatientID:   row.PatientID,
		PatientName: row.PatientName,
		Form:        f,
		Attended:    form.YesNo(f.Attended),
		PaymentMade: form.YesNo(f.PaymentMade),
		Action:      "/schedules/" + strconv.FormatUint(uint64(row.ID), 10) + "/sessions",
	}
}

// ======================================================
// SAVE
// ======================================================

// Create trata POST /schedules.
func (h *ScheduleWebHandler) Create(c *gin.Context) {
	initial := schedule.NewAppointment(h.today())
	h.save(c, initial, "/schedules")
}

// Update trata POST /schedules/:id. O agendamento original é buscado para
// que o paciente não possa ser trocado.
func (h *ScheduleWebHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", httperr.CodeInvalidScheduleID)
	if !ok {
		return
	}

	client := middleware.Auth(c).Client()
	original, err := client.GetSchedule(c.Request.Context(), id)
	if err != nil {
		if unauthorized(c, err) {
			return
		}
		toast.Push(c, toast.Error(schedule.NewFailure(err).Message))
		redirect(c, "/schedules")
		return
	}

	h.save(c, schedule.EditAppointment(*original, h.loc), "/schedules/"+strconv.FormatUint(uint64(id), 10))
}

func (h *ScheduleWebHandler) save(c *gin.Context, initial schedule.AppointmentForm, action string) {
	ctx := c.Request.Context()
	client := middleware.Auth(c).Client()

	m := schedule.NewModal(initial)
	m.Open()
	m.Edit("patient", c.PostForm("patient_id"))
	m.Edit("date", c.PostForm("date"))
	m.Edit("time", c.PostForm("time"))
	m.Edit("modality", c.PostForm("modality"))

	err := m.Submit(ctx, h.today(), h.submitter.For(middleware.VisitorID(c), client))
	if err == nil {
		ev := event(c, audit.ActionCreate, audit.EntitySchedule, nil)
		msg := schedule.MsgCreated
		if initial.IsEdit() {
			ev.Action, ev.EntityID = audit.ActionUpdate, audit.ID(initial.ScheduleID)
			msg = schedule.MsgUpdated
		}
		h.audit.Dispatch(ev)
		toast.Push(c, toast.Success(msg))
		redirect(c, "/schedules")
		return
	}

	status := http.StatusUnprocessableEntity
	var failure *schedule.Failure
	switch {
	case errors.Is(err, schedule.ErrInvalid):
		_ = c.Error(httperr.ErrBusiness(httperr.CodeInvalidForm))
	case errors.As(err, &failure):
		if unauthorized(c, err) {
			return
		}
		toast.Push(c, toast.Error(failure.Message))
		status = upstreamStatus(failure.Err)
	}

	board, ok := h.load(c)
	if !ok {
		return
	}
	data := gin.H{"Board": board}
	h.withModal(data, board, m, action)
	render(c, status, "schedules", "Agendamentos", data)
}

// ======================================================
// DELETE
// ======================================================

func (h *ScheduleWebHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", httperr.CodeInvalidScheduleID)
	if !ok {
		return
	}
	client := middleware.Auth(c).Client()

	d := confirm.New("", "", "/schedules", func(ctx context.Context) error {
		return client.DeleteSchedule(ctx, id)
	})
	if err := d.Confirm(c.Request.Context()); err != nil {
		if unauthorized(c, err) {
			return
		}
		h.logger.Error("deleting schedule", "schedule_id", id, "error", err)
		toast.Push(c, toast.Error(api.MessageOr(err, msgDeleteFailed)))
		redirect(c, "/schedules")
		return
	}

	h.audit.Dispatch(event(c, audit.ActionDelete, audit.EntitySchedule, audit.ID(id)))
	toast.Push(c, toast.Success(schedule.MsgDeleted))
	redirect(c, "/schedules")
}

// ======================================================
// SESSION
// ======================================================

// LogSession trata POST /schedules/:id/sessions. Cada envio cria um novo
// registro para o paciente do agendamento.
func (h *ScheduleWebHandler) LogSession(c *gin.Context) {
	id, ok := paramID(c, "id", httperr.CodeInvalidScheduleID)
	if !ok {
		return
	}
	patientID := formID(c, "patient_id")

	var f schedule.SessionForm
	f.SetAttended(c.PostForm("attended") == "true")
	f.SetPaymentMade(c.PostForm("payment_made") == "true")
	f.SetPaymentAmount(c.PostForm("payment_amount"))
	f.Notes = c.PostForm("notes")

	client := middleware.Auth(c).Client()
	err := schedule.SubmitSession(c.Request.Context(), client, patientID, f, time.Now())
	if err != nil {
		if unauthorized(c, err) {
			return
		}
		status := upstreamStatus(err)
		if errors.Is(err, schedule.ErrPatientMissing) {
			_ = c.Error(httperr.ErrBusiness(httperr.CodePatientIDMissing))
			status = http.StatusUnprocessableEntity
		}
		h.logger.Error("saving session", "schedule_id", id, "patient_id", patientID, "error", err)
		toast.Push(c, toast.Error(schedule.SessionFailureMessage(err)))
		h.renderSession(c, status, id, f)
		return
	}

	h.audit.Dispatch(event(c, audit.ActionSession, audit.EntityPatient, audit.ID(patientID)))
	toast.Push(c, toast.Success(schedule.MsgSessionSaved))
	redirect(c, "/schedules")
}

// renderSession redesenha o quadro com o modal de sessão aberto e o que foi
// digitado.
func (h *ScheduleWebHandler) renderSession(c *gin.Context, status int, id uint, f schedule.SessionForm) {
	board, ok := h.load(c)
	if !ok {
		return
	}
	row, found := board.Row(id)
	if !found {
		redirect(c, "/schedules")
		return
	}
	render(c, status, "schedules", "Agendamentos", gin.H{
		"Board":        board,
		"SessionModal": newSessionModal(row, f),
	})
}
