package models

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthSession é a resposta de POST /sessions.
type AuthSession struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// NewUser é o corpo de POST /users.
type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
