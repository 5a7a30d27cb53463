package rcbor

import (
	"errors"
	"math"
	"testing"
)

func TestReadUnsignedShortestForms(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		size  int
	}{
		{"immediate_zero", 0, 1},
		{"immediate_max", 23, 1},
		{"u8_min", 24, 2},
		{"u8_max", math.MaxUint8, 2},
		{"u16_min", math.MaxUint8 + 1, 3},
		{"u16_max", math.MaxUint16, 3},
		{"u32_min", math.MaxUint16 + 1, 5},
		{"u32_max", math.MaxUint32, 5},
		{"u64_min", math.MaxUint32 + 1, 9},
		{"u64_max", math.MaxUint64, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.size)
			w := NewWriter(buf)
			w.PrependUnsigned(tt.value)
			out, err := w.Stop()
			if err != nil {
				t.Fatalf("Stop failed: %v", err)
			}
			if len(out) != tt.size {
				t.Fatalf("encoded size = %d, want %d (shortest form)", len(out), tt.size)
			}

			r := NewReader(out)
			got, sc := r.ReadUnsigned()
			if sc == SizeNone {
				t.Fatal("ReadUnsigned reported SizeNone")
			}
			if got != tt.value {
				t.Fatalf("got %d, want %d", got, tt.value)
			}
			if r.BytesRemaining() != 0 {
				t.Fatalf("%d bytes left unconsumed", r.BytesRemaining())
			}
		})
	}
}

func TestNextReportsMajorType(t *testing.T) {
	buf := make([]byte, 16)
	w := NewWriter(buf)
	w.PrependText("hi")
	out, _ := w.Stop()

	r := NewReader(out)
	if mt := r.Next(); mt != MajorTextString {
		t.Fatalf("Next() = %v, want TextString", mt)
	}
	// Next must not consume.
	if mt := r.Next(); mt != MajorTextString {
		t.Fatalf("second Next() = %v, want TextString (peek must not advance)", mt)
	}
}

func TestNextEmptyInput(t *testing.T) {
	r := NewReader(nil)
	if mt := r.Next(); mt != MajorNone {
		t.Fatalf("Next() on empty input = %v, want None", mt)
	}
}

func TestReadDataRoundTrip(t *testing.T) {
	payload := []byte{0x0A, 0x0B, 0x0C}
	buf := make([]byte, 8)
	w := NewWriter(buf)
	w.PrependData(payload)
	out, err := w.Stop()
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	r := NewReader(out)
	got, ok := r.ReadData()
	if !ok {
		t.Fatal("ReadData failed")
	}
	if string(got) != string(payload) {
		t.Fatalf("got % x, want % x", got, payload)
	}
}

func TestReadTextRoundTrip(t *testing.T) {
	text := "edhoc message 1"
	buf := make([]byte, 32)
	w := NewWriter(buf)
	w.PrependText(text)
	out, err := w.Stop()
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	r := NewReader(out)
	got, ok := r.ReadText()
	if !ok {
		t.Fatal("ReadText failed")
	}
	if got != text {
		t.Fatalf("got %q, want %q", got, text)
	}
}

func TestReadDataWrongTypeDoesNotAdvance(t *testing.T) {
	buf := make([]byte, 8)
	w := NewWriter(buf)
	w.PrependUnsigned(5)
	out, _ := w.Stop()

	r := NewReader(out)
	if _, ok := r.ReadData(); ok {
		t.Fatal("ReadData should fail on a non-byte-string item")
	}
	if r.Stop() != 0 {
		t.Fatalf("cursor advanced on type mismatch: offset=%d", r.Stop())
	}

	// The same typed read that actually matches must still succeed.
	got, sc := r.ReadUnsigned()
	if sc == SizeNone || got != 5 {
		t.Fatalf("ReadUnsigned after failed ReadData = %d/%v, want 5", got, sc)
	}
}

func TestReadTruncatedHeaderDoesNotAdvance(t *testing.T) {
	// 0x19 declares a 2-byte argument but supplies only one.
	r := NewReader([]byte{0x19, 0x01})
	if _, sc := r.ReadUnsigned(); sc != SizeNone {
		t.Fatalf("expected SizeNone on truncated argument, got %v", sc)
	}
	if r.Stop() != 0 {
		t.Fatalf("cursor must not advance on truncation, got %d", r.Stop())
	}
}

func TestReadReservedAdditionalInfo(t *testing.T) {
	for _, b := range []byte{0x1C, 0x1D, 0x1E} { // additional info 28, 29, 30
		r := NewReader([]byte{b})
		if _, sc := r.ReadUnsigned(); sc != SizeNone {
			t.Fatalf("byte %#x: expected SizeNone for reserved additional info", b)
		}
	}
}

func TestReadArrayAndMapCounts(t *testing.T) {
	buf := make([]byte, 32)
	w := NewWriter(buf)
	w.OpenArray()
	w.PrependUnsigned(3)
	w.PrependUnsigned(2)
	w.PrependUnsigned(1)
	w.WrapArray()
	out, err := w.Stop()
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	r := NewReader(out)
	if got := r.ReadArray(); got != 3 {
		t.Fatalf("ReadArray = %d, want 3", got)
	}
	for _, want := range []uint64{1, 2, 3} {
		v, sc := r.ReadUnsigned()
		if sc == SizeNone || v != want {
			t.Fatalf("got %d, want %d", v, want)
		}
	}
}

func TestReadMapDoesNotDoublePairCount(t *testing.T) {
	buf := make([]byte, 32)
	w := NewWriter(buf)
	w.OpenMap()
	w.PrependBool(false)
	w.PrependUnsigned(2)
	w.PrependBool(true)
	w.PrependUnsigned(1)
	w.WrapMap()
	out, err := w.Stop()
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	r := NewReader(out)
	if got := r.ReadMap(); got != 2 {
		t.Fatalf("ReadMap = %d, want 2 pairs (not 4)", got)
	}
}

func TestReadSimpleValues(t *testing.T) {
	buf := make([]byte, 16)
	w := NewWriter(buf)
	w.OpenArray()
	w.PrependUndefined()
	w.PrependNull()
	w.PrependBool(false)
	w.PrependBool(true)
	w.WrapArray()
	out, err := w.Stop()
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	r := NewReader(out)
	if got := r.ReadArray(); got != 4 {
		t.Fatalf("ReadArray = %d, want 4", got)
	}
	want := []SimpleValue{SimpleTrue, SimpleFalse, SimpleNull, SimpleUndefined}
	for i, w := range want {
		if got := r.ReadSimple(); got != w {
			t.Fatalf("item %d: got %v, want %v", i, got, w)
		}
	}
}

func TestReadSimpleExhausted(t *testing.T) {
	r := NewReader(nil)
	if got := r.ReadSimple(); got != SimpleNone {
		t.Fatalf("ReadSimple on empty input = %v, want SimpleNone", got)
	}
}

func TestReadArrayErrorSentinel(t *testing.T) {
	r := NewReader([]byte{0x01}) // unsigned 1, not an array
	if got := r.ReadArray(); got != MaxUint {
		t.Fatalf("ReadArray on non-array = %d, want MaxUint", got)
	}
}

func TestStopReportsCursor(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	r.ReadUnsigned()
	if got := r.Stop(); got != 1 {
		t.Fatalf("Stop() = %d, want 1", got)
	}
}

func TestCheckedReadsSucceedLikeSentinelForms(t *testing.T) {
	buf := make([]byte, 32)
	w := NewWriter(buf)
	w.OpenArray()
	w.PrependText("hi")
	w.PrependData([]byte{0x0A, 0x0B})
	w.PrependUnsigned(7)
	w.WrapArray()
	out, err := w.Stop()
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	r := NewReader(out)
	n, err := r.ReadArrayChecked()
	if err != nil || n != 3 {
		t.Fatalf("ReadArrayChecked = %d/%v, want 3/nil", n, err)
	}
	v, err := r.ReadUnsignedChecked()
	if err != nil || v != 7 {
		t.Fatalf("ReadUnsignedChecked = %d/%v, want 7/nil", v, err)
	}
	data, err := r.ReadDataChecked()
	if err != nil || string(data) != "\x0a\x0b" {
		t.Fatalf("ReadDataChecked = % x/%v, want 0a 0b/nil", data, err)
	}
	text, err := r.ReadTextChecked()
	if err != nil || text != "hi" {
		t.Fatalf("ReadTextChecked = %q/%v, want hi/nil", text, err)
	}
}

func TestCheckedReadsReportInvalidMajorType(t *testing.T) {
	buf := make([]byte, 8)
	w := NewWriter(buf)
	w.PrependUnsigned(5)
	out, _ := w.Stop()

	r := NewReader(out)
	if _, err := r.ReadDataChecked(); !errors.Is(err, ErrInvalidMajorType) {
		t.Fatalf("ReadDataChecked on unsigned = %v, want ErrInvalidMajorType", err)
	}
	if _, err := r.ReadArrayChecked(); !errors.Is(err, ErrInvalidMajorType) {
		t.Fatalf("ReadArrayChecked on unsigned = %v, want ErrInvalidMajorType", err)
	}
	if r.Stop() != 0 {
		t.Fatalf("cursor advanced on type mismatch: offset=%d", r.Stop())
	}
}

func TestCheckedReadsReportTruncation(t *testing.T) {
	// 0x19 declares a 2-byte argument but supplies only one.
	r := NewReader([]byte{0x19, 0x01})
	if _, err := r.ReadUnsignedChecked(); !errors.Is(err, ErrUnexpectedEndOfData) {
		t.Fatalf("ReadUnsignedChecked on truncated input = %v, want ErrUnexpectedEndOfData", err)
	}

	r = NewReader(nil)
	if _, err := r.ReadArrayChecked(); !errors.Is(err, ErrUnexpectedEndOfData) {
		t.Fatalf("ReadArrayChecked on empty input = %v, want ErrUnexpectedEndOfData", err)
	}
}

func TestCheckedReadsReportMalformedHeader(t *testing.T) {
	for _, b := range []byte{0x1C, 0x1D, 0x1E} { // additional info 28, 29, 30
		r := NewReader([]byte{b})
		if _, err := r.ReadUnsignedChecked(); !errors.Is(err, ErrMalformedHeader) {
			t.Fatalf("byte %#x: ReadUnsignedChecked = %v, want ErrMalformedHeader", b, err)
		}
	}
}

func TestCheckedReadsReportOversizeArgument(t *testing.T) {
	// Byte-string header claims 5 payload bytes but only 1 is present.
	r := NewReader([]byte{0x45, 0x01})
	if _, err := r.ReadDataChecked(); !errors.Is(err, ErrOversizeArgument) {
		t.Fatalf("ReadDataChecked on oversize length = %v, want ErrOversizeArgument", err)
	}
	if r.Stop() != 0 {
		t.Fatalf("cursor advanced on oversize argument: offset=%d", r.Stop())
	}
}
