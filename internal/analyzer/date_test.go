package analyzer

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		nilOK bool
	}{
		{"empty", "", "", true},
		{"whitespace", "   ", "", true},
		{"datetime", "2025-02-04 00:00:00", "2025-02-04", false},
		{"day first dash", "04-02-2025", "2025-02-04", false},
		{"day first slash", "15/01/2024", "2024-01-15", false},
		{"short month", "01-Feb-25", "2025-02-01", false},
		{"long year month", "01-Feb-2025", "2025-02-01", false},
		{"spaced month", "01 - Feb - 2025", "2025-02-01", false},
		{"already canonical", "2025-02-04", "2025-02-04", false},
		{"month name flexible", "Jan 2, 2025", "2025-01-02", false},
		{"unparseable passthrough", "not a date", "not a date", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDate(tt.input)
			if tt.nilOK {
				if got != nil {
					t.Errorf("NormalizeDate(%q) = %q, want nil", tt.input, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("NormalizeDate(%q) = nil, want %q", tt.input, tt.want)
			}
			if *got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, *got, tt.want)
			}
		})
	}
}

func TestParseDayFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"01/04/2024", "2024-04-01", true},
		{"30-04-2024", "2024-04-30", true},
		{"2 Jan 2024", "2024-01-02", true},
		{"2024-04-01", "2024-04-01", true},
		{"garbage", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDayFirst(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDayFirst(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseDayFirst(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}
