package services

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const BUS_STOP_ID_FIELD = "Bus Stop ID"

var validate = validator.New()

// ValidateStopID trims raw and checks it is present and numeric. It returns
// the trimmed id, or a warning message when validation fails.
func ValidateStopID(raw string) (string, string) {
	stopID := strings.TrimSpace(raw)
	if err := validate.Var(stopID, "required"); err != nil {
		return stopID, requiredMessage(BUS_STOP_ID_FIELD)
	}
	if err := validate.Var(stopID, "number"); err != nil {
		return stopID, invalidFormatMessage(BUS_STOP_ID_FIELD)
	}
	return stopID, ""
}

func requiredMessage(fields ...string) string {
	return fmt.Sprintf("Missing required field(s). [%s]", strings.Join(fields, ", "))
}

func invalidFormatMessage(fields ...string) string {
	return fmt.Sprintf("Invalid input format (Numeric only) on the following field(s). [%s].", strings.Join(fields, ", "))
}
