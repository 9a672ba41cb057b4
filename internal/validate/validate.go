package validate

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"pet-manager-admin/internal/ports/petapi"
)

// Validación client-side de los formularios. Un formulario rechazado
// acá no genera ningún request. Los mensajes son los fijos que ve el
// usuario, por campo.

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	// phonebr: al menos 10 dígitos una vez sacado el formato.
	_ = val.RegisterValidation("phonebr", func(fl validator.FieldLevel) bool {
		return digitCount(fl.Field().String()) >= 10
	})
	return val
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// Pet valida el payload de alta/edición de un pet. Devuelve mensajes
// por campo; mapa vacío = válido.
func Pet(in petapi.PetInput) map[string]string {
	in.Name = strings.TrimSpace(in.Name)
	in.Species = strings.TrimSpace(in.Species)

	errs := map[string]string{}
	err := v.Struct(in)
	if err == nil {
		return errs
	}

	for _, fe := range fieldErrors(err) {
		switch fe.Field() {
		case "Name":
			errs["nome"] = "Nome é obrigatório"
		case "Species":
			errs["especie"] = "Espécie é obrigatória"
		case "Age":
			errs["idade"] = "Idade inválida"
		}
	}
	return errs
}

// Tutor valida el payload de alta/edición de un tutor.
func Tutor(in petapi.TutorInput) map[string]string {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)

	errs := map[string]string{}
	err := v.Struct(in)
	if err == nil {
		return errs
	}

	for _, fe := range fieldErrors(err) {
		switch fe.Field() {
		case "Name":
			errs["nome"] = "Nome é obrigatório"
		case "Phone":
			if fe.Tag() == "required" {
				errs["telefone"] = "Telefone é obrigatório"
			} else {
				errs["telefone"] = "Telefone inválido"
			}
		case "Address":
			errs["endereco"] = "Endereço é obrigatório"
		}
	}
	return errs
}

func fieldErrors(err error) validator.ValidationErrors {
	if ve, ok := err.(validator.ValidationErrors); ok {
		return ve
	}
	return nil
}
