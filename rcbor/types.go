package rcbor

// MajorType is the 3-bit item class carried in the high bits of every
// CBOR initial byte. MajorNone is a sentinel reported when there is
// nothing left to peek, not a value ever present on the wire.
type MajorType int8

const (
	// MajorNone means no bytes remain to peek, or the initial byte did
	// not decode to one of the recognized major types.
	MajorNone MajorType = -1
	// MajorUnsigned is major type 0: an unsigned integer.
	MajorUnsigned MajorType = 0
	// MajorByteString is major type 2: a byte string.
	MajorByteString MajorType = 2
	// MajorTextString is major type 3: a UTF-8 text string.
	MajorTextString MajorType = 3
	// MajorArray is major type 4: a definite-length array.
	MajorArray MajorType = 4
	// MajorMap is major type 5: a definite-length map.
	MajorMap MajorType = 5
	// MajorSimple is major type 7: a simple value.
	MajorSimple MajorType = 7
)

// String returns the name of the major type.
func (mt MajorType) String() string {
	switch mt {
	case MajorNone:
		return "None"
	case MajorUnsigned:
		return "Unsigned"
	case MajorByteString:
		return "ByteString"
	case MajorTextString:
		return "TextString"
	case MajorArray:
		return "Array"
	case MajorMap:
		return "Map"
	case MajorSimple:
		return "Simple"
	default:
		return "Unknown"
	}
}

// SizeClass describes how a CBOR item's argument is encoded: directly
// in the initial byte's low 5 bits (Immediate), or in a fixed number of
// trailing big-endian bytes.
type SizeClass int8

const (
	// SizeNone signals a failed ReadUnsigned: a malformed initial byte
	// (an additional-info field of 28, 29, 30, or the indefinite-length
	// marker 31, none of which this codec produces) or a header cut short
	// by the end of input.
	SizeNone SizeClass = -1
	// SizeImmediate means the argument (0-23) is encoded directly in
	// the initial byte.
	SizeImmediate SizeClass = 0
	// SizeU8 means a single trailing byte carries the argument.
	SizeU8 SizeClass = 24
	// SizeU16 means 2 trailing big-endian bytes carry the argument.
	SizeU16 SizeClass = 25
	// SizeU32 means 4 trailing big-endian bytes carry the argument.
	SizeU32 SizeClass = 26
	// SizeU64 means 8 trailing big-endian bytes carry the argument.
	SizeU64 SizeClass = 27
)

// String returns the name of the size class.
func (sc SizeClass) String() string {
	switch sc {
	case SizeNone:
		return "None"
	case SizeImmediate:
		return "Immediate"
	case SizeU8:
		return "U8"
	case SizeU16:
		return "U16"
	case SizeU32:
		return "U32"
	case SizeU64:
		return "U64"
	default:
		return "Unknown"
	}
}

// SimpleValue enumerates the four single-byte simple values this codec
// produces and recognizes. SimpleNone is a sentinel for "no value" /
// error, never a byte actually written to the wire.
type SimpleValue byte

const (
	// SimpleNone is returned on a failed read; it is not a valid CBOR
	// simple value.
	SimpleNone SimpleValue = 0x00
	// SimpleFalse is the boolean value false (0xF4).
	SimpleFalse SimpleValue = 0xF4
	// SimpleTrue is the boolean value true (0xF5).
	SimpleTrue SimpleValue = 0xF5
	// SimpleNull is the null value (0xF6).
	SimpleNull SimpleValue = 0xF6
	// SimpleUndefined is the undefined value (0xF7).
	SimpleUndefined SimpleValue = 0xF7
)

// String returns the name of the simple value, or "Unknown" for any
// byte value read back that isn't one of the four recognized constants.
func (sv SimpleValue) String() string {
	switch sv {
	case SimpleNone:
		return "None"
	case SimpleFalse:
		return "False"
	case SimpleTrue:
		return "True"
	case SimpleNull:
		return "Null"
	case SimpleUndefined:
		return "Undefined"
	default:
		return "Unknown"
	}
}

// MaxUint is the sentinel ReadArray/ReadMap return on error, matching
// the C original's use of SIZE_MAX.
const MaxUint = ^uint64(0)

// encodeInitialByte packs a major type and a 5-bit additional-info
// field into a single CBOR initial byte.
func encodeInitialByte(mt MajorType, additional byte) byte {
	return byte(mt)<<5 | (additional & 0x1F)
}

// decodeInitialByte splits a CBOR initial byte into its major type and
// 5-bit additional-info field.
func decodeInitialByte(b byte) (MajorType, byte) {
	return MajorType(b >> 5), b & 0x1F
}

// classifyUnsigned picks the shortest size class able to hold value,
// per the shortest-form rule spec.md §4.1 requires on encode.
func classifyUnsigned(value uint64) SizeClass {
	switch {
	case value < uint64(SizeU8):
		return SizeImmediate
	case value <= 0xFF:
		return SizeU8
	case value <= 0xFFFF:
		return SizeU16
	case value <= 0xFFFFFFFF:
		return SizeU32
	default:
		return SizeU64
	}
}

// argumentLength returns how many trailing bytes a size class carries.
func argumentLength(sc SizeClass) int {
	switch sc {
	case SizeImmediate:
		return 0
	case SizeU8:
		return 1
	case SizeU16:
		return 2
	case SizeU32:
		return 4
	case SizeU64:
		return 8
	default:
		return 0
	}
}
