package palette

import (
	"bytes"
	"errors"
	"testing"
)

func TestLoadRoundTrip(t *testing.T) {
	var raw [NumColors * bytesPerColor]byte
	for i := range raw {
		raw[i] = byte(i)
	}
	tbl, err := Load(bytes.NewReader(raw[:]))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl[0] != (Color{0, 1, 2}) {
		t.Fatalf("tbl[0] = %+v, want {0,1,2}", tbl[0])
	}
	last := tbl[NumColors-1]
	want := Color{raw[len(raw)-3], raw[len(raw)-2], raw[len(raw)-1]}
	if last != want {
		t.Fatalf("tbl[63] = %+v, want %+v", last, want)
	}
}

func TestLoadShortPalette(t *testing.T) {
	_, err := Load(bytes.NewReader(make([]byte, 10)))
	if !errors.Is(err, ErrShortPalette) {
		t.Fatalf("err = %v, want ErrShortPalette", err)
	}
}

func TestDefaultIsNotAllZero(t *testing.T) {
	tbl := Default()
	allZero := true
	for _, c := range tbl {
		if c != (Color{}) {
			allZero = false
			break
		}
	}
	if allZero {
		t.Fatal("Default() returned an all-zero table")
	}
}
