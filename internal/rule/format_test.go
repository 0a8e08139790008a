package rule

import "testing"

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Rp 0"},
		{999, "Rp 999"},
		{1000, "Rp 1.000"},
		{50000, "Rp 50.000"},
		{1500000, "Rp 1.500.000"},
		{1234567890, "Rp 1.234.567.890"},
		{-25000, "Rp -25.000"},
		{1500.5, "Rp 1.500,5"},
	}
	for _, tt := range tests {
		if got := FormatRupiah(tt.in); got != tt.want {
			t.Errorf("FormatRupiah(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatConditionValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"999", "999"},
		{"1000", "Rp 1.000"},
		{"abc", "abc"},
		{"", ""},
		{" 2500 ", "Rp 2.500"},
		{"999.5", "999.5"},   // below threshold, raw string kept
		{"1e6", "Rp 1.000.000"},
	}
	for _, tt := range tests {
		if got := FormatConditionValue(tt.in); got != tt.want {
			t.Errorf("FormatConditionValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"50000", "Rp 50.000"},
		{"1.500.000", "Rp 1.500.000"}, // pre-grouped input is not double-formatted
		{"1500000", "Rp 1.500.000"},
		{"0", "Rp 0"},
		{"not-a-number", "not-a-number"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
