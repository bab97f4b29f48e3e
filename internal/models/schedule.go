package models

import "time"

// Schedule é um agendamento. O instante é sempre um único campo combinado
// de data e hora.
type Schedule struct {
	ID               uint      `json:"id"`
	PatientID        uint      `json:"patient_id"`
	PatientName      string    `json:"patient_name"`
	PatientWhatsapp  string    `json:"patient_whatsapp"`
	ScheduleDateTime time.Time `json:"schedule_date_time"`
	IsPresencial     bool      `json:"isPresencial"`
}

// CreateScheduleInput é o corpo de POST /schedules.
type CreateScheduleInput struct {
	PatientID        uint      `json:"patient_id"`
	ScheduleDateTime time.Time `json:"schedule_dateTime"`
	IsPresencial     bool      `json:"isPresencial"`
}

// UpdateScheduleInput é o corpo de PUT /schedules/:id. O paciente não muda
// depois de criado.
type UpdateScheduleInput struct {
	ScheduleDateTime time.Time `json:"schedule_dateTime"`
	IsPresencial     bool      `json:"isPresencial"`
}
