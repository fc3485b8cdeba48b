package util

import (
	"net/mail"
	"regexp"
	"strings"
)

// ValidationError describe un chequeo de formulario fallido antes de enviar
// nada al backend.
type ValidationError struct {
	Campo  string
	Motivo string
}

func (e *ValidationError) Error() string {
	return e.Campo + ": " + e.Motivo
}

// rucPattern acepta el formato paraguayo con dígito verificador.
var rucPattern = regexp.MustCompile(`^\d{6,8}-\d$`)

// Requerir garantiza string no vacío.
func Requerir(value, campo string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Campo: campo, Motivo: "obligatorio"}
	}
	return nil
}

// ValidarEmail devuelve error para correos inválidos. El vacío es válido:
// los campos de contacto son opcionales.
func ValidarEmail(email, campo string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &ValidationError{Campo: campo, Motivo: "correo inválido"}
	}
	return nil
}

// ValidarRUC verifica el formato del RUC.
func ValidarRUC(ruc string) error {
	if !rucPattern.MatchString(strings.TrimSpace(ruc)) {
		return &ValidationError{Campo: "ruc", Motivo: "formato inválido, se espera 9999999-9"}
	}
	return nil
}
