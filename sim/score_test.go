package sim

import "testing"

func TestScore(t *testing.T) {
	const points, maxBytes, total = 1000, 20, 50
	for _, test := range []struct {
		buttons, bytes int
		expected       int
	}{
		{50, 20, 1000},
		{25, 20, 250},
		{50, 30, 250},
		{50, 10, 2000},
		{50, 40, 0},
		{50, 41, 0},
		{0, 10, 0},
		{50, 0, 20000}, // treated as 1 byte
	} {
		if s := Score(points, maxBytes, total, test.buttons, test.bytes); s != test.expected {
			t.Errorf("score for %d buttons and %d bytes: expected %d, got %d",
				test.buttons, test.bytes, test.expected, s)
		}
	}
}
