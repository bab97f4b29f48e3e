package models

import "time"

// SessionRecord é o registro de uma sessão como listado pela API.
type SessionRecord struct {
	ID            uint      `json:"id"`
	Attended      bool      `json:"attended"`
	PaymentMade   bool      `json:"paymentmade"`
	PaymentAmount *string   `json:"paymentamount"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

// SessionRecordInput é o corpo de POST /patients/:id/sessions. Cada envio
// cria um novo registro.
type SessionRecordInput struct {
	Date          time.Time `json:"date"`
	Attended      bool      `json:"attended"`
	PaymentMade   bool      `json:"paymentMade"`
	PaymentAmount *float64  `json:"paymentAmount"`
	Notes         string    `json:"notes"`
}
