package models

import (
	"strings"
	"time"
)

type Patient struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	DateOfBirth string     `json:"date_of_birth"`
	Description string     `json:"description,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Whatsapp    string     `json:"whatsapp,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// BirthDate devolve a data de nascimento como YYYY-MM-DD, ignorando
// qualquer componente de hora que a API envie.
func (p Patient) BirthDate() string {
	d, _, _ := strings.Cut(p.DateOfBirth, "T")
	return d
}

// PatientInput é o corpo de POST/PUT /patients.
type PatientInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DateOfBirth string `json:"date_of_birth"`
	Phone       string `json:"phone"`
	Whatsapp    string `json:"whatsapp"`
}
