package ports

import "testing"

func TestProgress_Fraction(t *testing.T) {
	tests := []struct {
		name string
		p    Progress
		want float64
	}{
		{"unknown total", Progress{Received: 10, Total: -1}, -1},
		{"zero total", Progress{Received: 0, Total: 0}, -1},
		{"half", Progress{Received: 50, Total: 100}, 0.5},
		{"complete", Progress{Received: 100, Total: 100}, 1},
		{"overshoot clamps", Progress{Received: 120, Total: 100}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Fraction(); got != tt.want {
				t.Errorf("Fraction() = %v, want %v", got, tt.want)
			}
		})
	}
}
