package normalize

import "testing"

func TestParseAmountMixedFormats(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$1,500.50", 1500.50},
		{"1.500,50", 1500.50}, // European order
		{"1,500", 1500},       // lone comma, three trailing digits -> thousands
		{"1.234", 1234},       // lone dot, three trailing digits -> thousands
		{"1.23", 1.23},        // lone dot, two trailing digits -> decimal
		{"€ 2.345.678,90", 2345678.90},
		{"USD 42", 42},
		{"1,234,567.89", 1234567.89},
		{"0.00", 0},
	}
	for _, c := range cases {
		got, ok := ParseAmount(c.in)
		if !ok {
			t.Fatalf("ParseAmount(%q) unparseable", c.in)
		}
		if got != c.want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseAmountPreservesSign(t *testing.T) {
	got, ok := ParseAmount("-50.00")
	if !ok || got != -50 {
		t.Fatalf("ParseAmount(-50.00) = %v ok=%v", got, ok)
	}
}

func TestParseAmountUnparseable(t *testing.T) {
	for _, in := range []string{"abc", "", "Unknown", "$", "..,,"} {
		if got, ok := ParseAmount(in); ok {
			t.Fatalf("ParseAmount(%q) = %v, want unparseable", in, got)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(1234.5, "$"); got != "$1,234.50" {
		t.Fatalf("FormatAmount got %q", got)
	}
	if got := FormatAmount(42, ""); got != "42.00" {
		t.Fatalf("FormatAmount got %q", got)
	}
	if got := FormatAmount(1234567.891, "€"); got != "€1,234,567.89" {
		t.Fatalf("FormatAmount got %q", got)
	}
}
