package credentials

import "testing"

func TestGenerateAccessCode(t *testing.T) {
	tests := []struct {
		name        string
		iterations  int
		shouldMatch bool
	}{
		{
			name:        "generates eight digits",
			iterations:  500,
			shouldMatch: true,
		},
		{
			name:       "generates distinct codes",
			iterations: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make(map[string]bool)
			for i := 0; i < tt.iterations; i++ {
				code, err := GenerateAccessCode()
				if err != nil {
					t.Fatalf("GenerateAccessCode() error = %v", err)
				}

				if len(code) != AccessCodeLength {
					t.Errorf("code %q has length %d, want %d", code, len(code), AccessCodeLength)
				}
				for _, c := range code {
					if c < '0' || c > '9' {
						t.Errorf("code %q contains non-digit %q", code, c)
					}
				}

				// 50 draws from 10^8 codes colliding is a one-in-millions event
				if !tt.shouldMatch {
					if seen[code] {
						t.Errorf("duplicate code generated: %s", code)
					}
					seen[code] = true
				}
			}
		})
	}
}

func TestNormalizeAccessCode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "12345678", want: "12345678"},
		{input: "1234-5678", want: "12345678"},
		{input: "  1234-5678 ", want: "12345678"},
		{input: "12-34-5678", want: "1234-5678"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		if got := NormalizeAccessCode(tt.input); got != tt.want {
			t.Errorf("NormalizeAccessCode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatAccessCode(t *testing.T) {
	if got := FormatAccessCode("01234567"); got != "0123-4567" {
		t.Errorf("FormatAccessCode() = %q", got)
	}
	if got := FormatAccessCode("123"); got != "123" {
		t.Errorf("FormatAccessCode() should leave short input alone, got %q", got)
	}
}
