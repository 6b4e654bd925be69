package schemata

import (
	"errors"
	"testing"
)

func TestNarrowInt(t *testing.T) {
	for _, i := range []int64{0, -1 << 31, 1<<31 - 1} {
		if got, err := narrowInt(i, 32); err != nil || int64(got) != i {
			t.Fatalf("narrowInt(%d, 32) = %d, %v", i, got, err)
		}
	}
	for _, i := range []int64{1 << 31, -1<<31 - 1} {
		_, err := narrowInt(i, 32)
		var ve *ValueError
		if !errors.As(err, &ve) || ve.Code != CodeInvalidValue {
			t.Fatalf("narrowInt(%d, 32): expected invalid_value, got %v", i, err)
		}
	}
	if got, err := narrowInt(1<<40, 64); err != nil || got != 1<<40 {
		t.Fatalf("64-bit ints must pass: %d, %v", got, err)
	}
}
