package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid - базовая (sentinel error) ошибка валидации.
var ErrInvalid = errors.New("validation failed")

var (
	once     sync.Once
	instance *validator.Validate
)

func validate() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
	})
	return instance
}

// Struct - проверяет структуру по тегам `validate:"..."`.
// Возвращает ErrInvalid с перечнем нарушенных правил.
func Struct(s any) error {
	err := validate().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s (got %q)", fe.Namespace(), fe.Tag(), fe.Param(), fmt.Sprint(fe.Value())))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s (got %q)", fe.Namespace(), fe.Tag(), fmt.Sprint(fe.Value())))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(parts, "; "))
}
