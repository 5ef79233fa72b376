package analyzer

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1234.56", 1234.56, true},
		{"1,234.56", 1234.56, true},
		{"₹1,000", 1000, true},
		{"$99.99", 99.99, true},
		{"1,234.56 Cr.", 1234.56, true},
		{"500.00 Dr", 500, true},
		{"(100.00)", -100, true},
		{"-250.75", -250.75, true},
		{"0", 0, true},
		{"", 0, false},
		{"nan", 0, false},
		{"NaN", 0, false},
		{"None", 0, false},
		{"N/A", 0, false},
		{"-", 0, false},
		{"2025-02-05", 0, false},
		{"2025/02/05 extra", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseAmount(tt.input)
			if tt.ok {
				if got == nil {
					t.Fatalf("ParseAmount(%q) = nil, want %v", tt.input, tt.want)
				}
				if *got != tt.want {
					t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, *got, tt.want)
				}
				return
			}
			if got != nil {
				t.Errorf("ParseAmount(%q) = %v, want nil", tt.input, *got)
			}
		})
	}
}
