package stats

import "testing"

func TestFormatInt(t *testing.T) {
	tests := []struct {
		v    float64
		ok   bool
		want string
	}{
		{12, true, "12"},
		{0, true, "0"},
		{0, false, "0"},
		{2.5, true, "2.5"},
	}

	for _, tt := range tests {
		if got := FormatInt(tt.v, tt.ok); got != tt.want {
			t.Errorf("FormatInt(%v, %v) = %q, want %q", tt.v, tt.ok, got, tt.want)
		}
	}
}

func TestFormatFixed(t *testing.T) {
	tests := []struct {
		v      float64
		ok     bool
		places int
		want   string
	}{
		{0.5, true, 3, "0.500"},
		{1, true, 3, "1.000"},
		{1.0 / 3.0, true, 3, "0.333"},
		{2.0 / 3.0, true, 3, "0.667"},
		{4.5, true, 1, "4.5"},
		{0, false, 3, "0.000"},
		{0, false, 1, "0.0"},
		{0, false, 0, "0"},
	}

	for _, tt := range tests {
		if got := FormatFixed(tt.v, tt.ok, tt.places); got != tt.want {
			t.Errorf("FormatFixed(%v, %v, %d) = %q, want %q", tt.v, tt.ok, tt.places, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		v    float64
		ok   bool
		want string
	}{
		{0.625, true, "62.5%"},
		{1, true, "100.0%"},
		{0, true, "0.0%"},
		{0, false, "0.0%"},
		{2.0 / 3.0, true, "66.7%"},
	}

	for _, tt := range tests {
		if got := FormatPercent(tt.v, tt.ok); got != tt.want {
			t.Errorf("FormatPercent(%v, %v) = %q, want %q", tt.v, tt.ok, got, tt.want)
		}
	}
}

func TestSafeDiv(t *testing.T) {
	if got := safeDiv(3, 0); got != 0 {
		t.Errorf("safeDiv(3, 0) = %v, want 0", got)
	}
	if got := safeDiv(3, 4); got != 0.75 {
		t.Errorf("safeDiv(3, 4) = %v, want 0.75", got)
	}
}

func TestRenderFormats(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatInteger, "0.625"},
		{FormatDecimal, "0.625"},
		{FormatPct, "62.5%"},
	}

	for _, tt := range tests {
		if got := render(tt.format, 3, 0.625, true); got != tt.want {
			t.Errorf("render(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}
