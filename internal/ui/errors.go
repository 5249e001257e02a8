package ui

import (
	"fmt"

	appErrors "optionfield/internal/errors"
)

func configurationError(format string, args ...any) error {
	return appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf(format, args...), nil)
}
