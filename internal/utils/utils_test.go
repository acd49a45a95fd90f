package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "hello world",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "hello",
			limit:  10,
			expect: "hello",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "hello world",
			limit:  5,
			expect: "hello...",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  spaced  ",
			limit:  5,
			expect: "space...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  float64
		places int
		expect float64
	}{
		{
			name:   "three decimals",
			input:  0.61234,
			places: 3,
			expect: 0.612,
		},
		{
			name:   "rounds half up",
			input:  0.6125,
			places: 3,
			expect: 0.613,
		},
		{
			name:   "two decimals for percentages",
			input:  78.44721,
			places: 2,
			expect: 78.45,
		},
		{
			name:   "zero stays zero",
			input:  0,
			places: 3,
			expect: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Round(tt.input, tt.places); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}
