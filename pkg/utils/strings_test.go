package utils

import "testing"

func TestToTitleCase(t *testing.T) {
	cases := map[string]string{
		"CUSTOMER":            "Customer",
		"THE QUICK brown FOX": "The Quick Brown Fox",
		"":                    "",
		"a":                   "A",
	}
	for in, want := range cases {
		if got := ToTitleCase(in); got != want {
			t.Fatalf("ToTitleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMask(t *testing.T) {
	if got := Mask("1234567890", 4, 8, '*'); got != "1234****90" {
		t.Fatalf("got %q", got)
	}
	if got := Mask("abc", 1, 100, '#'); got != "a##" {
		t.Fatalf("got %q", got)
	}
	if got := Mask("abc", 5, 6, '#'); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"alice@example.com": "a****@example.com",
		"a@x.com":           "a@x.com",
		"noatsign":          "n*******",
	}
	for in, want := range cases {
		if got := MaskEmail(in); got != want {
			t.Fatalf("MaskEmail(%q) = %q, want %q", in, got, want)
		}
	}
}
