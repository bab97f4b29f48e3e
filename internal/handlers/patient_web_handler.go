package handlers

import (
	"context"
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
	"github.com/BruksfildServices01/psique-web/internal/patients"
	"github.com/BruksfildServices01/psique-web/internal/toast"
	"github.com/BruksfildServices01/psique-web/pkg/logging"
)

const msgPatientsLoadFailed = "Erro ao carregar pacientes"

type PatientWebHandler struct {
	loc    *time.Location
	audit  *audit.Dispatcher
	logger *logging.Logger
}

func NewPatientWebHandler(loc *time.Location, dispatcher *audit.Dispatcher, logger *logging.Logger) *PatientWebHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &PatientWebHandler{loc: loc, audit: dispatcher, logger: logger}
}

func patientPath(id uint) string {
	return "/patient/" + strconv.FormatUint(uint64(id), 10)
}

func bindPatientForm(c *gin.Context) patients.Form {
	return patients.Form{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		DateOfBirth: c.PostForm("date_of_birth"),
		Phone:       c.PostForm("phone"),
		Whatsapp:    c.PostForm("whatsapp"),
	}
}

// ======================================================
// LIST
// ======================================================

func (h *PatientWebHandler) List(c *gin.Context) {
	list, err := middleware.Auth(c).Client().ListPatients(c.Request.Context())
	if err != nil {
		if unauthorized(c, err) {
			return
		}
		h.logger.Error("listing patients", "error", err)
		toast.Push(c, toast.Error(msgPatientsLoadFailed))
	}

	render(c, http.StatusOK, "patients", "Pacientes", gin.H{
		"Rows": patients.Rows(list),
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *PatientWebHandler) New(c *gin.Context) {
	h.renderForm(c, http.StatusOK, 0, patients.Form{}, form.Errors{})
}

func (h *PatientWebHandler) Create(c *gin.Context) {
	f := bindPatientForm(c)
	if errs := f.Validate(); errs.Any() {
		_ = c.Error(httperr.ErrBusiness(httperr.CodeInvalidForm))
		h.renderForm(c, http.StatusUnprocessableEntity, 0, f, errs)
		return
	}

	if err := middleware.Auth(c).Client().CreatePatient(c.Request.Context(), f.Input()); err != nil {
		if unauthorized(c, err) {
			return
		}
		h.logger.Error("creating patient", "error", err)
		toast.Push(c, toast.Error(api.MessageOr(err, patients.MsgSaveFailed)))
		h.renderForm(c, upstreamStatus(err), 0, f, form.Errors{})
		return
	}

	h.audit.Dispatch(event(c, audit.ActionCreate, audit.EntityPatient, nil))
	toast.Push(c, toast.Success(patients.MsgCreated))
	redirect(c, "/patients")
}

// renderForm desenha o formulário de criação (id zero) ou de edição.
func (h *PatientWebHandler) renderForm(c *gin.Context, status int, id uint, f patients.Form, errs form.Errors) {
	data := gin.H{
		"Viewing":    false,
		"Form":       f,
		"Errors":     errs,
		"Heading":    "Novo Paciente",
		"Subheading": "Preencha os campos para inserir um novo paciente",
		"Action":     "/patient",
		"CancelURL":  "/patients",
	}
	if id != 0 {
		data["Heading"] = "Atualização de paciente"
		data["Subheading"] = "Altere os campos necessários"
		data["Action"] = patientPath(id)
		data["CancelURL"] = patientPath(id)
	}
	render(c, status, "patient", "Paciente", data)
}

// ======================================================
// SHOW / UPDATE
// ======================================================

// Show mostra a ficha com o histórico de sessões. ?edit=1 abre o
// formulário e ?confirm=1 o diálogo de remoção.
func (h *PatientWebHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "id", httperr.CodeInvalidPatientID)
	if !ok {
		return
	}

	detail, err := patients.LoadDetail(c.Request.Context(), middleware.Auth(c).Client(), id, h.loc)
	if err != nil {
		if unauthorized(c, err) {
			return
		}
		h.logger.Error("loading patient", "patient_id", id, "error", err)
		toast.Push(c, toast.Error(patients.MsgLoadFailed))
		redirect(c, "/patients")
		return
	}

	if c.Query("edit") == "1" {
		h.renderForm(c, http.StatusOK, id, detail.Form, form.Errors{})
		return
	}

	data := gin.H{
		"Viewing":    true,
		"Detail":     detail,
		"Form":       detail.Form,
		"Errors":     form.Errors{},
		"Heading":    "Visualização de paciente",
		"Subheading": "Visualize os dados do paciente",
	}
	if c.Query("confirm") == "1" {
		d := confirm.New(patients.DeleteMessage(detail.Patient.Name), patientPath(id)+"/delete", patientPath(id), nil)
		d.Show()
		data["Confirm"] = d
	}
	render(c, http.StatusOK, "patient", "Paciente", data)
}

func (h *PatientWebHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", httperr.CodeInvalidPatientID)
	if !ok {
		return
	}

	f := bindPatientForm(c)
	if errs := f.Validate(); errs.Any() {
		_ = c.Error(httperr.ErrBusiness(httperr.CodeInvalidForm))
		h.renderForm(c, http.StatusUnprocessableEntity, id, f, errs)
		return
	}

	if err := middleware.Auth(c).Client().UpdatePatient(c.Request.Context(), id, f.Input()); err != nil {
		if unauthorized(c, err) {
			return
		}
		h.logger.Error("updating patient", "patient_id", id, "error", err)
		toast.Push(c, toast.Error(api.MessageOr(err, patients.MsgSaveFailed)))
		h.renderForm(c, upstreamStatus(err), id, f, form.Errors{})
		return
	}

	h.audit.Dispatch(event(c, audit.ActionUpdate, audit.EntityPatient, audit.ID(id)))
	toast.Push(c, toast.Success(patients.MsgUpdated))
	redirect(c, "/patients")
}

// ======================================================
// DELETE
// ======================================================

func (h *PatientWebHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", httperr.CodeInvalidPatientID)
	if !ok {
		return
	}
	client := middleware.Auth(c).Client()

	d := confirm.New("", "", patientPath(id), func(ctx context.Context) error {
		return client.DeletePatient(ctx, id)
	})
	if err := d.Confirm(c.Request.Context()); err != nil {
		if unauthorized(c, err) {
			return
		}
		h.logger.Error("deleting patient", "patient_id", id, "error", err)
		toast.Push(c, toast.Error(api.MessageOr(err, patients.MsgDeleteFailed)))
		redirect(c, patientPath(id))
		return
	}

	h.audit.Dispatch(event(c, audit.ActionDelete, audit.EntityPatient, audit.ID(id)))
	toast.Push(c, toast.Success(patients.MsgDeleted))
	redirect(c, "/patients")
}
