package auth

import (
	"strings"

	"github.com/BruksfildServices01/psique-web/internal/form"
	"github.com/BruksfildServices01/psique-web/internal/models"
)

const (
	MsgInvalidEmail   = "O email deve ser preenchido corretamente!"
	MsgShortPassword  = "A senha deve conter pelo menos 3 caracteres!"
	MsgShortName      = "O nome deve conter pelo menos 3 caracteres!"
	MsgLoginSuccess   = "Login successful"
	MsgLogoutSuccess  = "Logout successful"
	MsgSignUpSuccess  = "User created with success"
	MsgLoginFallback  = "Não foi possível entrar. Tente novamente mais tarde."
	MsgSignUpFallback = "Não foi possível criar o usuário. Tente novamente mais tarde."
	minPasswordLength = 3
	minNameLength     = 3
)

// ValidateLogin verifica cada campo de forma independente.
func ValidateLogin(c models.Credentials) form.Errors {
	errs := form.Errors{}
	if !form.IsValidEmail(strings.TrimSpace(c.Email)) {
		errs.Set("email", MsgInvalidEmail)
	}
	if len(c.Password) < minPasswordLength {
		errs.Set("password", MsgShortPassword)
	}
	return errs
}

func ValidateSignUp(u models.NewUser) form.Errors {
	errs := ValidateLogin(models.Credentials{Email: u.Email, Password: u.Password})
	if !form.MinLen(u.Name, minNameLength) {
		errs.Set("name", MsgShortName)
	}
	return errs
}
