package utils

import (
	"math"
	"testing"
)

func TestPositiveIntOr(t *testing.T) {
	cases := map[string]int{
		"":    7,
		"abc": 7,
		"0":   7,
		"-3":  7,
		"4":   4,
	}
	for in, want := range cases {
		if got := PositiveIntOr(in, 7); got != want {
			t.Fatalf("PositiveIntOr(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestPageCountAndOffset(t *testing.T) {
	if got := PageCount(25, 10); got != 3 {
		t.Fatalf("PageCount(25, 10) = %d", got)
	}
	if got := PageCount(0, 10); got != 0 {
		t.Fatalf("PageCount(0, 10) = %d", got)
	}
	if got := PageOffset(3, 10); got != 20 {
		t.Fatalf("PageOffset(3, 10) = %d", got)
	}
	if got := PageOffset(0, 10); got != 0 {
		t.Fatalf("PageOffset(0, 10) = %d", got)
	}
}

func TestPageOffset_HugePageNeverNegative(t *testing.T) {
	for _, page := range []int{math.MaxInt / 50, math.MaxInt - 1, math.MaxInt} {
		got := PageOffset(page, 100)
		if got < 0 {
			t.Fatalf("PageOffset(%d, 100) = %d", page, got)
		}
		if got%100 != 0 {
			t.Fatalf("PageOffset(%d, 100) = %d, not a page boundary", page, got)
		}
	}
	if got := PositiveIntOr("99999999999999999999", 1); got != 1 {
		t.Fatalf("out of range query value should fall back, got %d", got)
	}
}
