package errors

import (
	"testing"
)

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		wantErr bool
	}{
		{"default size", 160, 60, false},
		{"one pixel", 1, 1, false},
		{"max size", 8192, 8192, false},

		{"zero width", 0, 60, true},
		{"zero height", 160, 0, true},
		{"negative", -1, 60, true},
		{"too wide", 8193, 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%d, %d) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateFontList(t *testing.T) {
	tests := []struct {
		name    string
		fonts   []string
		wantErr bool
	}{
		{"single builtin", []string{"builtin:gomono"}, false},
		{"several", []string{"builtin:gomono", "/usr/share/fonts/a.ttf"}, false},

		{"nil", nil, true},
		{"empty", []string{}, true},
		{"blank entry", []string{"builtin:gomono", "  "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFontList(tt.fonts)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFontList(%v) error = %v, wantErr %v", tt.fonts, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFontSizes(t *testing.T) {
	tests := []struct {
		name    string
		sizes   []int
		wantErr bool
	}{
		{"defaults", []int{42, 50, 56}, false},
		{"single", []int{12}, false},

		{"empty", nil, true},
		{"zero", []int{42, 0}, true},
		{"negative", []int{-5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFontSizes(tt.sizes)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFontSizes(%v) error = %v, wantErr %v", tt.sizes, err, tt.wantErr)
			}
		})
	}
}

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"alnum", "Ab3", false},
		{"space", "a b", false},
		{"unicode", "äöü", false},

		{"newline", "a\nb", true},
		{"null byte", "a\x00b", true},
		{"tab", "a\tb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
