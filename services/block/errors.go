package block

import "fmt"

// RegistryError is a typed failure from the block registry.
type RegistryError struct {
	Code    string
	Message string
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError reports invalid registry input.
func NewValidationError(msg string) error {
	return &RegistryError{
		Code:    "validationError",
		Message: msg,
	}
}
