// Package schedule monta o quadro de agendamentos e conduz os formulários
// de agendamento e de sessão abertos a partir dele.
package schedule

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/psique-web/internal/form"
	"github.com/BruksfildServices01/psique-web/internal/models"
	"github.com/BruksfildServices01/psique-web/internal/timezone"
)

// WindowDays é o tamanho da janela exibida, contando hoje.
const WindowDays = 31

const (
	MsgCreated = "Agendamento incluído com sucesso"
	MsgUpdated = "Agendamento alterado com sucesso"
	MsgDeleted = "Agendamento excluído com sucesso"

	ModalityPresencialLabel = "Atendimento presencial"
	ModalityOnlineLabel     = "Atendimento online"
)

var weekdays = [...]string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado",
}

var months = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Window devolve `days` datas consecutivas (meia-noite) a partir de today.
func Window(today time.Time, days int) []time.Time {
	start := timezone.StartOfDay(today)
	out := make([]time.Time, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, start.AddDate(0, 0, i))
	}
	return out
}

// DayKey normaliza um instante para a data de calendário em loc. O
// agrupamento compara essas strings, nunca instantes.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(form.LayoutISODate)
}

// GroupByDay agrupa por DayKey, ordenando cada dia por horário.
func GroupByDay(items []models.Schedule, loc *time.Location) map[string][]models.Schedule {
	out := make(map[string][]models.Schedule)
	for _, s := range items {
		k := DayKey(s.ScheduleDateTime, loc)
		out[k] = append(out[k], s)
	}
	for _, day := range out {
		sort.SliceStable(day, func(i, j int) bool {
			return day[i].ScheduleDateTime.Before(day[j].ScheduleDateTime)
		})
	}
	return out
}

// DayLabel: "Hoje", "Amanhã" ou "domingo - 1 de dezembro".
func DayLabel(day, today time.Time) string {
	d := day.In(today.Location())
	switch {
	case timezone.SameDay(d, today):
		return "Hoje"
	case timezone.SameDay(d, today.AddDate(0, 0, 1)):
		return "Amanhã"
	}
	return fmt.Sprintf("%s - %d de %s", weekdays[d.Weekday()], d.Day(), months[d.Month()-1])
}

func ModalityLabel(presencial bool) string {
	if presencial {
		return ModalityPresencialLabel
	}
	return ModalityOnlineLabel
}

func DeleteMessage(patientName, hhmm string) string {
	return fmt.Sprintf("Tem certeza que deseja excluir o agendamento para o paciente %s, as %s?", patientName, hhmm)
}

// WhatsAppLink monta o link de confirmação. O texto muda se a consulta é
// hoje ou numa data futura.
func WhatsAppLink(whatsapp, patientName, signature string, at, today time.Time) string {
	loc := today.Location()
	local := at.In(loc)
	hhmm := local.Format(form.LayoutTime)

	when := "hoje"
	if !timezone.SameDay(local, today) {
		when = local.Format(form.LayoutBRDate)
	}
	msg := fmt.Sprintf(
		"Olá! Aqui é da clínica da %s. Gostaríamos de confirmar a presença do paciente %s, para a consulta agendada para %s, às %s.",
		signature, patientName, when, hhmm,
	)
	return "https://wa.me/" + form.DigitsOnly(whatsapp) + "?text=" + encodeURIComponent(msg)
}

func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ======================================================
// BOARD
// ======================================================

type Row struct {
	ID            uint
	PatientID     uint
	PatientName   string
	Time          string
	Presencial    bool
	ModalityLabel string
	PatientURL    string
	WhatsAppURL   string
	DeleteMessage string
	Edit          AppointmentForm
}

type Day struct {
	Key   string
	Label string
	Date  time.Time
	Rows  []Row
	New   AppointmentForm
}

type Board struct {
	Today    time.Time
	Days     []Day
	Patients []models.Patient
}

// PatientOptions alimenta o select de paciente do formulário de criação.
func (b *Board) PatientOptions(selected uint) []form.Option {
	sel := ""
	if selected != 0 {
		sel = strconv.FormatUint(uint64(selected), 10)
	}
	return form.Options(b.Patients,
		func(p models.Patient) string { return strconv.FormatUint(uint64(p.ID), 10) },
		func(p models.Patient) string { return p.Name },
		sel,
	)
}

// Day devolve o dia da janela com a chave informada.
func (b *Board) Day(key string) (*Day, bool) {
	for i := range b.Days {
		if b.Days[i].Key == key {
			return &b.Days[i], true
		}
	}
	return nil, false
}

// Row procura um agendamento pelo id em toda a janela.
func (b *Board) Row(id uint) (*Row, bool) {
	for i := range b.Days {
		for j := range b.Days[i].Rows {
			if b.Days[i].Rows[j].ID == id {
				return &b.Days[i].Rows[j], true
			}
		}
	}
	return nil, false
}

// BuildBoard monta a janela a partir de today. Agendamentos fora dela não
// aparecem.
func BuildBoard(schedules []models.Schedule, patients []models.Patient, today time.Time, signature string) *Board {
	loc := today.Location()
	today = timezone.StartOfDay(today)
	grouped := GroupByDay(schedules, loc)

	b := &Board{Today: today, Patients: patients}
	for _, date := range Window(today, WindowDays) {
		key := DayKey(date, loc)
		day := Day{
			Key:   key,
			Label: DayLabel(date, today),
			Date:  date,
			New:   NewAppointment(date),
		}
		for _, s := range grouped[key] {
			hhmm := s.ScheduleDateTime.In(loc).Format(form.LayoutTime)
			day.Rows = append(day.Rows, Row{
				ID:            s.ID,
				PatientID:     s.PatientID,
				PatientName:   s.PatientName,
				Time:          hhmm,
				Presencial:    s.IsPresencial,
				ModalityLabel: ModalityLabel(s.IsPresencial),
				PatientURL:    "/patient/" + strconv.FormatUint(uint64(s.PatientID), 10),
				WhatsAppURL:   WhatsAppLink(s.PatientWhatsapp, s.PatientName, signature, s.ScheduleDateTime, today),
				DeleteMessage: DeleteMessage(s.PatientName, hhmm),
				Edit:          EditAppointment(s, loc),
			})
		}
		b.Days = append(b.Days, day)
	}
	return b
}

// Source é o que o quadro precisa da API.
type Source interface {
	ListSchedules(ctx context.Context) ([]models.Schedule, error)
	ListPatients(ctx context.Context) ([]models.Patient, error)
}

// Load busca agendamentos e pacientes em paralelo e monta o quadro. Cada
// renderização busca tudo de novo.
func Load(ctx context.Context, src Source, today time.Time, signature string) (*Board, error) {
	var (
		schedules []models.Schedule
		patients  []models.Patient
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		schedules, err = src.ListSchedules(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		patients, err = src.ListPatients(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return BuildBoard(schedules, patients, today, signature), nil
}
