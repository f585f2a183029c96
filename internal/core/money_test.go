package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"12.34", 1234},
		{"12,34", 1234},
		{"500", 50000},
		{"0.5", 50},
		{"12.345", 1235}, // third digit rounds half-up
		{"12.344", 1234},
		{"", 0},          // blank normalizes to zero
		{"abc", 0},       // unparseable normalizes to zero
		{"-3.50", 0},     // negative amounts are not allowed
		{"1.2.3", 0},
		{"  7.00 ", 700},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseAmount(tc.in); got.Cents != tc.want {
				t.Fatalf("ParseAmount(%q) = %d cents, want %d", tc.in, got.Cents, tc.want)
			}
		})
	}
}

func TestParseSignedAmount(t *testing.T) {
	if got := ParseSignedAmount("-12.34"); got.Cents != -1234 {
		t.Fatalf("got %d, want -1234", got.Cents)
	}
	if got := ParseSignedAmount("12.34"); got.Cents != 1234 {
		t.Fatalf("got %d, want 1234", got.Cents)
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{50000, "500.00"},
		{-1234, "-12.34"},
		{5, "0.05"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyStringRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, -100, 123456, -5} {
		m := Money{Cents: cents}
		if back := ParseSignedAmount(m.String()); back.Cents != cents {
			t.Fatalf("round trip of %d cents gave %d", cents, back.Cents)
		}
	}
}
