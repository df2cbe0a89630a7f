package royalty

import "testing"

func TestDeriveRate(t *testing.T) {
	cases := []struct {
		name    string
		sales   float64
		royalty float64
		want    float64
	}{
		{"us domestic", 245000, 30625, 12.5},
		{"zero sales", 0, 30625, 0},
		{"zero royalty", 245000, 0, 0},
		{"both zero", 0, 0, 0},
		{"three decimals", 78000, 6630, 8.5},
		{"rounds half up", 34000, 2550, 7.5},
	}
	for _, tc := range cases {
		if got := DeriveRate(tc.sales, tc.royalty); got != tc.want {
			t.Fatalf("%s: DeriveRate(%v, %v) = %v, want %v", tc.name, tc.sales, tc.royalty, got, tc.want)
		}
	}
}

func TestDeriveRateRoundsToThreeDecimals(t *testing.T) {
	// 1000/3000 would be 33.333333...; the derived rate keeps three decimals.
	if got := DeriveRate(3000, 1000); got != 33.333 {
		t.Fatalf("DeriveRate(3000, 1000) = %v, want 33.333", got)
	}
}

func TestHasDiscrepancy(t *testing.T) {
	cases := []struct {
		name       string
		calculated float64
		latest     float64
		flag       float64
		want       bool
	}{
		{"flagged but equal", 100, 100, 5, false},
		{"flagged and differs", 100, 120, 5, true},
		{"unflagged differs", 100, 120, 0, false},
		{"unflagged equal", 100, 100, 0, false},
	}
	for _, tc := range cases {
		if got := HasDiscrepancy(tc.calculated, tc.latest, tc.flag); got != tc.want {
			t.Fatalf("%s: HasDiscrepancy(%v, %v, %v) = %v, want %v",
				tc.name, tc.calculated, tc.latest, tc.flag, got, tc.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	cases := []struct {
		name  string
		value *float64
		want  string
	}{
		{"plain", f(0.3), "0.3"},
		{"strips trailing zeros", f(12.500000), "12.5"},
		{"whole number", f(10), "10"},
		{"nil", nil, ""},
		{"zero", f(0), "0"},
	}
	for _, tc := range cases {
		if got := FormatPercent(tc.value); got != tc.want {
			t.Fatalf("%s: FormatPercent = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFormatPercentStringPassesThroughUnparseable(t *testing.T) {
	if got := FormatPercentString("n/a"); got != "n/a" {
		t.Fatalf("FormatPercentString(%q) = %q", "n/a", got)
	}
	if got := FormatPercentString("12.500"); got != "12.5" {
		t.Fatalf("FormatPercentString(%q) = %q", "12.500", got)
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{30625, "$30,625"},
		{597500, "$597,500"},
		{2550.5, "$2,550.5"},
		{0, "$0"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.value); got != tc.want {
			t.Fatalf("FormatCurrency(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestTruncateWords(t *testing.T) {
	if got := TruncateWords("one two three", 5); got != "one two three" {
		t.Fatalf("short text changed: %q", got)
	}
	if got := TruncateWords("one two three four", 2); got != "one two" {
		t.Fatalf("TruncateWords = %q, want %q", got, "one two")
	}
	if got := TruncateWords("a  b   c", 3); got != "a  b   c" {
		t.Fatalf("text within limit changed: %q", got)
	}
	if got := TruncateWords("", 2); got != "" {
		t.Fatalf("empty text changed: %q", got)
	}
}
