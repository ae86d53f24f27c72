package game

import "testing"

func TestParseGuess(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"42", 42, true},
		{"42abc", 42, true},
		{"  7", 7, true},
		{"\t12x", 12, true},
		{"+8", 8, true},
		{"-3", -3, true},
		{"3.9", 3, true},
		{"007", 7, true},
		{"1e3", 1, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"x42", 0, false},
		{"+-1", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseGuess(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseGuess(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseGuessSaturates(t *testing.T) {
	got, ok := ParseGuess("99999999999999999999999999999")
	if !ok || got <= MaxNumber {
		t.Fatalf("long digit runs must stay out of range, got %d, %v", got, ok)
	}
	got, ok = ParseGuess("-99999999999999999999999999999")
	if !ok || got >= MinNumber {
		t.Fatalf("long negative runs must stay out of range, got %d, %v", got, ok)
	}
}

func TestParseGuessStrict(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"42", 42, true},
		{" 42\n", 42, true},
		{"42abc", 0, false},
		{"3.9", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseGuessStrict(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseGuessStrict(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
