package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStopID(t *testing.T) {
	tests := []struct {
		raw     string
		stopID  string
		warning string
	}{
		{"", "", "Missing required field(s). [Bus Stop ID]"},
		{"   ", "", "Missing required field(s). [Bus Stop ID]"},
		{"abc", "abc", "Invalid input format (Numeric only) on the following field(s). [Bus Stop ID]."},
		{"12a", "12a", "Invalid input format (Numeric only) on the following field(s). [Bus Stop ID]."},
		{"-5", "-5", "Invalid input format (Numeric only) on the following field(s). [Bus Stop ID]."},
		{" 10009 ", "10009", ""},
		{"83139", "83139", ""},
	}

	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			stopID, warning := ValidateStopID(test.raw)
			assert.Equal(t, test.stopID, stopID)
			assert.Equal(t, test.warning, warning)
		})
	}
}
