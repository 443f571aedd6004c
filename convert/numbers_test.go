package convert

import "testing"

func TestRoundFloat64(t *testing.T) {
	tests := []struct {
		number   float64
		decimals int
		expected float64
	}{
		{1.23456, 2, 1.23},
		{1.235, 2, 1.24},
		{-1.005, 1, -1.0},
		{87.6543, 0, 88},
		{0.00084, 5, 0.00084},
	}

	for _, tt := range tests {
		if got := RoundFloat64(tt.number, tt.decimals); got != tt.expected {
			t.Errorf("RoundFloat64(%v, %d) expected %v, got %v", tt.number, tt.decimals, tt.expected, got)
		}
	}
}

func TestTwoDecimals(t *testing.T) {
	if got := TwoDecimals(3.14159); got != 3.14 {
		t.Errorf("TwoDecimals(3.14159) expected 3.14, got %v", got)
	}
}

func TestOneDecimal(t *testing.T) {
	if got := OneDecimal(12.34); got != 12.3 {
		t.Errorf("OneDecimal(12.34) expected 12.3, got %v", got)
	}
}

func TestMWhToKWhPrice(t *testing.T) {
	if got := MWhToKWhPrice(85.0); got != 0.085 {
		t.Errorf("MWhToKWhPrice(85.0) expected 0.085, got %v", got)
	}
}
