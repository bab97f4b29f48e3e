package models

// User é o profissional autenticado, como devolvido por POST /sessions.
type User struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
