package domain

import "testing"

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "mobile_with_ninth_digit", raw: "11987654321", want: "551187654321"},
		{name: "mobile_with_country_prefix", raw: "5511987654321", want: "551187654321"},
		{name: "legacy_eight_digit", raw: "1187654321", want: "551187654321"},
		{name: "formatted_input", raw: "(11) 98765-4321", want: "551187654321"},
		{name: "plus_and_dashes", raw: "+55 11 98765-4321", want: "551187654321"},
		{name: "nine_digits_not_starting_with_nine", raw: "11887654321", want: "5511887654321"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := NormalizePhone(tt.raw)
			if err != nil {
				t.Fatalf("NormalizePhone(%q): %v", tt.raw, err)
			}
			if got := p.Canonical(); got != tt.want {
				t.Fatalf("Canonical() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	t.Parallel()

	first, err := NormalizePhone("11987654321")
	if err != nil {
		t.Fatal(err)
	}
	second, err := NormalizePhone(first.Canonical())
	if err != nil {
		t.Fatalf("renormalizing canonical form: %v", err)
	}
	if first.Canonical() != second.Canonical() {
		t.Fatalf("not idempotent: %q vs %q", first.Canonical(), second.Canonical())
	}
}

func TestNormalizePhoneInvalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "123", "55123", "119876543210", "abc"} {
		if _, err := NormalizePhone(raw); err == nil {
			t.Errorf("NormalizePhone(%q): expected error", raw)
		}
	}
}

func TestPhoneForms(t *testing.T) {
	t.Parallel()

	p, err := NormalizePhone("5511987654321")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.StoreKey(); got != "1187654321" {
		t.Errorf("StoreKey() = %q, want %q", got, "1187654321")
	}
	if got := p.Display(); got != "(11) 8765-4321" {
		t.Errorf("Display() = %q, want %q", got, "(11) 8765-4321")
	}
}
