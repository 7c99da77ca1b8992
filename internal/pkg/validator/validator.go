package validator

import (
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/structure-inspection/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("rating", validateRating)
}

// validateRating - рейтинг компонента: целое от 1 до 5
func validateRating(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= 1 && v <= 5
}

// Validate - валидация структуры. Ошибки validator превращаются в ErrValidation
// с перечнем полей в details.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return apperrors.ErrValidation.WithMessage("%s", err.Error())
	}

	fields := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = fe.Tag()
	}

	return apperrors.ErrValidation.WithDetails(map[string]interface{}{
		"fields": fields,
	})
}

// fieldPath - путь поля без имени корневой структуры
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
