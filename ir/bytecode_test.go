package ir

import (
	"bytes"
	"errors"
	"testing"
)

func TestPutUint16WritesExactlyTwoBytes(t *testing.T) {
	b := Bytecode{0xAA, 0xAA, 0xAA, 0xAA, 0xAA}
	if err := b.PutUint16(1, 0x1234); err != nil {
		t.Fatal(err)
	}
	want := Bytecode{0xAA, 0x12, 0x34, 0xAA, 0xAA}
	if !bytes.Equal(b, want) {
		t.Errorf("got % x, want % x", b, want)
	}
}

func TestPutInt32WritesExactlyFourBytes(t *testing.T) {
	b := Bytecode{0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA}
	if err := b.PutInt32(1, -2); err != nil {
		t.Fatal(err)
	}
	want := Bytecode{0xAA, 0xFF, 0xFF, 0xFF, 0xFE, 0xAA}
	if !bytes.Equal(b, want) {
		t.Errorf("got % x, want % x", b, want)
	}
}

func TestPutBounds(t *testing.T) {
	b := make(Bytecode, 4)
	if err := b.PutUint16(3, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("u16 at 3 of 4: got %v", err)
	}
	if err := b.PutUint16(-1, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("negative offset: got %v", err)
	}
	if err := b.PutInt32(1, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("i32 at 1 of 4: got %v", err)
	}
	if err := b.PutInt32(0, 1); err != nil {
		t.Errorf("i32 at 0 of 4: %v", err)
	}
}
