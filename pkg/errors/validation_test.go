package errors

import (
	"strings"
	"testing"
)

func TestValidateFieldName(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		wantErr bool
	}{
		{"Simple", "SKU", false},
		{"WithSpaces", "Product Name", false},
		{"WithUnderscore", "Product_Name", false},
		{"Unicode", "Größe", false},
		{"Empty", "", true},
		{"OnlyWhitespace", "   ", true},
		{"TooLong", strings.Repeat("a", 257), true},
		{"MaxLength", strings.Repeat("a", 256), false},
		{"ControlChar", "SKU\x00", true},
		{"Newline", "SKU\nName", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFieldName(tt.field)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFieldName(%q) error = %v, wantErr %v", tt.field, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidField {
				t.Errorf("code = %s, want %s", GetCode(err), ErrCodeInvalidField)
			}
		})
	}
}
