package rcbor

import "encoding/binary"

// Reader is a forward, bounds-checked cursor over a CBOR byte slice.
// It never mutates its input. ReadData returns slices that borrow from
// it; ReadText returns a copy of the payload as a string. Every Read call validates its header,
// its argument bytes, and (for strings) its payload before advancing;
// on any failure it reports that call's error sentinel and leaves the
// cursor exactly where it was, so a caller may retry with a different
// typed read after Next.
type Reader struct {
	data   []byte
	offset int
}

// NewReader prepares a Reader over data, cursor at the start.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// BytesRemaining returns the number of unconsumed bytes.
func (r *Reader) BytesRemaining() int {
	return len(r.data) - r.offset
}

// Stop ends the reading session and returns the current cursor
// position. It cannot by itself distinguish "finished cleanly" from
// "cursor parked at an error byte" — callers that need to know must
// track the outcome of their own Read calls.
func (r *Reader) Stop() int {
	return r.offset
}

// Next peeks the major type of the next item without consuming any
// bytes. It returns MajorNone if no bytes remain, or if the initial
// byte's major type is one this codec does not model (negative
// integers, tags): such bytes are left for a typed Read to reject
// explicitly, since Next only classifies, it does not validate.
func (r *Reader) Next() MajorType {
	if r.offset >= len(r.data) {
		return MajorNone
	}
	mt, _ := decodeInitialByte(r.data[r.offset])
	switch mt {
	case MajorUnsigned, MajorByteString, MajorTextString, MajorArray, MajorMap, MajorSimple:
		return mt
	default:
		return MajorNone
	}
}

// decodeHeader reads the initial byte and argument at position at
// without mutating the reader. It returns the major type, the decoded
// argument, and the total number of header bytes (1 plus any trailing
// argument bytes) consumed. ok is false on truncation, on a reserved
// additional-info field (28-30), or on the indefinite-length marker
// (31); callers must not advance the
// cursor in that case.
func (r *Reader) decodeHeader(at int) (mt MajorType, value uint64, total int, ok bool) {
	if at >= len(r.data) {
		return MajorNone, 0, 0, false
	}
	mt, additional := decodeInitialByte(r.data[at])
	if additional < 24 {
		return mt, uint64(additional), 1, true
	}

	var argLen int
	switch additional {
	case 24:
		argLen = 1
	case 25:
		argLen = 2
	case 26:
		argLen = 4
	case 27:
		argLen = 8
	default:
		// 28-30 are reserved; 31 is the indefinite-length marker,
		// which this codec does not produce or accept.
		return MajorNone, 0, 0, false
	}

	if at+1+argLen > len(r.data) {
		return MajorNone, 0, 0, false
	}

	argBytes := r.data[at+1 : at+1+argLen]
	switch argLen {
	case 1:
		value = uint64(argBytes[0])
	case 2:
		value = uint64(binary.BigEndian.Uint16(argBytes))
	case 4:
		value = uint64(binary.BigEndian.Uint32(argBytes))
	case 8:
		value = binary.BigEndian.Uint64(argBytes)
	}
	return mt, value, 1 + argLen, true
}

// ReadUnsigned consumes exactly one header and returns its argument as
// an unsigned integer. It does not check the major type bits of the
// initial byte — callers that need typing call Next first. Returns
// SizeNone without advancing on truncation or a reserved
// additional-info field.
func (r *Reader) ReadUnsigned() (uint64, SizeClass) {
	mt, value, total, ok := r.decodeHeader(r.offset)
	_ = mt
	if !ok {
		return 0, SizeNone
	}
	additional := r.data[r.offset] & 0x1F
	sc := SizeImmediate
	if additional >= 24 {
		sc = SizeClass(additional)
	}
	r.offset += total
	return value, sc
}

// headerError classifies why decodeHeader failed at the current
// cursor position, for callers that want an `error` instead of a bare
// sentinel: ErrUnexpectedEndOfData if the header's initial byte or its
// trailing argument bytes run past the end of input, or
// ErrMalformedHeader if the additional-info field is one of the
// reserved values 28-30 or the indefinite-length marker 31.
func (r *Reader) headerError() error {
	if r.offset >= len(r.data) {
		return ErrUnexpectedEndOfData
	}
	_, additional := decodeInitialByte(r.data[r.offset])
	if additional < 24 {
		return nil
	}
	var argLen int
	switch additional {
	case 24:
		argLen = 1
	case 25:
		argLen = 2
	case 26:
		argLen = 4
	case 27:
		argLen = 8
	default:
		return ErrMalformedHeader
	}
	if r.offset+1+argLen > len(r.data) {
		return ErrUnexpectedEndOfData
	}
	return nil
}

// ReadUnsignedChecked is ReadUnsigned for callers that want an `error`
// return instead of a bare SizeClass sentinel.
func (r *Reader) ReadUnsignedChecked() (uint64, error) {
	v, sc := r.ReadUnsigned()
	if sc == SizeNone {
		return 0, r.headerError()
	}
	return v, nil
}

// readLengthPrefixed requires the next item's major type to be want,
// reads its length argument, and verifies the remaining input holds
// that many payload bytes. On any mismatch or truncation it returns
// ok=false and does not advance the cursor.
func (r *Reader) readLengthPrefixed(want MajorType) (payload []byte, ok bool) {
	mt, length, total, headerOK := r.decodeHeader(r.offset)
	if !headerOK || mt != want {
		return nil, false
	}
	payloadStart := r.offset + total
	if length > uint64(len(r.data)-payloadStart) {
		return nil, false
	}
	payloadEnd := payloadStart + int(length)
	r.offset = payloadEnd
	return r.data[payloadStart:payloadEnd], true
}

// ReadData requires the next item to be a byte string, and returns a
// slice into the input at its payload (not a copy). Does not advance
// on type mismatch or truncation.
func (r *Reader) ReadData() ([]byte, bool) {
	return r.readLengthPrefixed(MajorByteString)
}

// ReadText requires the next item to be a text string. UTF-8 is not
// validated; the bytes are returned verbatim as a string. Does not
// advance on type mismatch or truncation.
func (r *Reader) ReadText() (string, bool) {
	payload, ok := r.readLengthPrefixed(MajorTextString)
	if !ok {
		return "", false
	}
	return string(payload), true
}

// readLengthPrefixedChecked is readLengthPrefixed for callers that want
// an `error` identifying which of type mismatch, truncation, malformed
// header, or oversize length argument occurred.
func (r *Reader) readLengthPrefixedChecked(want MajorType) ([]byte, error) {
	mt, length, total, headerOK := r.decodeHeader(r.offset)
	if !headerOK {
		return nil, r.headerError()
	}
	if mt != want {
		return nil, ErrInvalidMajorType
	}
	payloadStart := r.offset + total
	if length > uint64(len(r.data)-payloadStart) {
		return nil, ErrOversizeArgument
	}
	payloadEnd := payloadStart + int(length)
	r.offset = payloadEnd
	return r.data[payloadStart:payloadEnd], nil
}

// ReadDataChecked is ReadData for callers that want an `error` return
// instead of a bare bool.
func (r *Reader) ReadDataChecked() ([]byte, error) {
	return r.readLengthPrefixedChecked(MajorByteString)
}

// ReadTextChecked is ReadText for callers that want an `error` return
// instead of a bare bool.
func (r *Reader) ReadTextChecked() (string, error) {
	payload, err := r.readLengthPrefixedChecked(MajorTextString)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// readCount requires the next item's major type to be want and
// returns its argument as an element/pair count, or MaxUint on any
// error (type mismatch, truncation, or reserved header).
func (r *Reader) readCount(want MajorType) uint64 {
	mt, count, total, ok := r.decodeHeader(r.offset)
	if !ok || mt != want {
		return MaxUint
	}
	r.offset += total
	return count
}

// ReadArray requires the next item to be an array and returns its
// element count, or MaxUint on error.
func (r *Reader) ReadArray() uint64 {
	return r.readCount(MajorArray)
}

// ReadMap requires the next item to be a map and returns its pair
// count (not doubled), or MaxUint on error.
func (r *Reader) ReadMap() uint64 {
	return r.readCount(MajorMap)
}

// readCountChecked is readCount for callers that want an `error`
// identifying type mismatch vs. truncation/malformed header.
func (r *Reader) readCountChecked(want MajorType) (uint64, error) {
	mt, count, total, ok := r.decodeHeader(r.offset)
	if !ok {
		return 0, r.headerError()
	}
	if mt != want {
		return 0, ErrInvalidMajorType
	}
	r.offset += total
	return count, nil
}

// ReadArrayChecked is ReadArray for callers that want an `error` return
// instead of the MaxUint sentinel.
func (r *Reader) ReadArrayChecked() (uint64, error) {
	return r.readCountChecked(MajorArray)
}

// ReadMapChecked is ReadMap for callers that want an `error` return
// instead of the MaxUint sentinel.
func (r *Reader) ReadMapChecked() (uint64, error) {
	return r.readCountChecked(MajorMap)
}

// ReadSimple consumes exactly one byte and returns it verbatim as a
// SimpleValue, including values outside the four recognized
// constants; callers compare the result against those constants
// themselves. Returns SimpleNone without advancing if no bytes remain.
func (r *Reader) ReadSimple() SimpleValue {
	if r.offset >= len(r.data) {
		return SimpleNone
	}
	v := SimpleValue(r.data[r.offset])
	r.offset++
	return v
}
