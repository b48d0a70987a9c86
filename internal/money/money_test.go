package money

import (
	"errors"
	"testing"
)

func TestParseValidAmounts(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
	}{
		{"5.00", 500},
		{"5", 500},
		{"-2.50", -250},
		{"+3.25", 325},
		{"0", 0},
		{"0.005", 1},
		{"12,34", 1234},
		{" 7.10 ", 710},
		{"-0.01", -1},
	}

	for _, tc := range cases {
		m, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tc.in, err)
		}
		if m.Cents != tc.cents {
			t.Fatalf("Parse(%q) = %d cents, want %d", tc.in, m.Cents, tc.cents)
		}
	}
}

func TestParseInvalidAmounts(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "1.2.3", "5.00 USD", "--5", "NaN", "Inf"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Parse(%q) expected ErrInvalidAmount, got %v", in, err)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{500, "$5.00"},
		{-250, "-$2.50"},
		{0, "$0.00"},
		{1234567, "$12345.67"},
	}

	for _, tc := range cases {
		if got := FromCents(tc.cents).Format(); got != tc.want {
			t.Fatalf("Format(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestSignClassification(t *testing.T) {
	if !FromCents(0).IsPositive() {
		t.Fatal("zero should classify as positive for display")
	}
	if FromCents(-1).IsPositive() {
		t.Fatal("-1 cent should classify as negative")
	}
	if FromCents(-250).Abs() != 250 {
		t.Fatal("Abs of -250 should be 250")
	}
}
