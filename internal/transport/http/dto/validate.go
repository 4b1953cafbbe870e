package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

var validate = validator.New()

// runValidate maps validator tag failures onto domain errors so every
// DTO produces the same error shapes.
func runValidate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return domain.ErrInvalidField("body", "invalid")
	}

	fe := verrs[0]
	field := jsonFieldName(fe)
	switch fe.Tag() {
	case "required":
		return domain.ErrMissingField(field)
	case "email":
		return domain.ErrInvalidField(field, "invalid format")
	case "min":
		if field == "password" {
			return domain.ErrWeakPassword("min length " + fe.Param())
		}
		return domain.ErrInvalidField(field, "too short")
	case "gte":
		return domain.ErrInvalidField(field, "negative")
	default:
		return domain.ErrInvalidField(field, fe.Tag())
	}
}

var fieldNames = map[string]string{
	"Firstname":       "firstname",
	"Lastname":        "lastname",
	"Email":           "email",
	"Password":        "password",
	"ConfirmPassword": "comfirmPassword",
	"Name":            "name",
	"Description":     "description",
	"PriceCents":      "priceCents",
	"Quantity":        "quantity",
}

func jsonFieldName(fe validator.FieldError) string {
	if n, ok := fieldNames[fe.Field()]; ok {
		return n
	}
	return fe.Field()
}
