// Package cosefixture builds small, representative CBOR-encoded
// messages shaped after EDHOC/COSE wire structures, using rcbor as the
// encoder. It exists to give cmd/cborcat something realistic to
// demonstrate and to give round-trip tests a richer corpus than bare
// scalars: nested arrays and maps holding unsigned integers and byte
// strings, the way EDHOC's message_1 and a simplified COSE_Sign1
// envelope are actually laid out on the wire.
//
// rcbor does not model CBOR tags or negative integers, so these
// fixtures approximate COSE_Sign1's usual tag-18-wrapped four-tuple as
// a plain, untagged array; callers that need the tag prepend it
// themselves with a different codec.
package cosefixture

import (
	"fmt"

	"github.com/argon-chat/rcbor/rcbor"
)

// EDHOCMethod enumerates the four EDHOC authentication method
// identifiers used in message_1's METHOD field.
type EDHOCMethod uint64

const (
	MethodSignSign     EDHOCMethod = 0
	MethodSignStatic   EDHOCMethod = 1
	MethodStaticSign   EDHOCMethod = 2
	MethodStaticStatic EDHOCMethod = 3
)

// EDHOCMessage1 describes the plaintext fields of EDHOC's first
// message: the chosen method, the initiator's offered cipher suites,
// its ephemeral public key, and its connection identifier.
type EDHOCMessage1 struct {
	Method       EDHOCMethod
	Suites       []uint64
	EphemeralKey []byte
	ConnectionID []byte
}

// Encode writes the message as a CBOR array
// [METHOD, SUITES_I, G_X, C_I] into buf, using buf's tail as working
// space. SUITES_I is encoded as a bare integer when it carries exactly
// one suite, or as an array of integers otherwise, matching EDHOC's
// own SUITES_I encoding rule.
func (m EDHOCMessage1) Encode(buf []byte) ([]byte, error) {
	w := rcbor.NewWriter(buf)
	w.OpenArray()
	w.PrependData(m.ConnectionID)
	w.PrependData(m.EphemeralKey)
	if len(m.Suites) == 1 {
		w.PrependUnsigned(m.Suites[0])
	} else {
		w.OpenArray()
		for i := len(m.Suites) - 1; i >= 0; i-- {
			w.PrependUnsigned(m.Suites[i])
		}
		w.WrapArray()
	}
	w.PrependUnsigned(uint64(m.Method))
	w.WrapArray()
	out, err := w.Stop()
	if err != nil {
		return nil, fmt.Errorf("cosefixture: encode message_1: %w", err)
	}
	return out, nil
}

// DecodeEDHOCMessage1 parses a message previously produced by
// EDHOCMessage1.Encode. It does not attempt to decode every wire
// variant EDHOC allows (e.g. SUITES_I as a mixed list with the
// trailing-selected-suite convention); it round-trips exactly what
// Encode produces.
func DecodeEDHOCMessage1(data []byte) (EDHOCMessage1, error) {
	r := rcbor.NewReader(data)
	var m EDHOCMessage1

	n := r.ReadArray()
	if n != 4 {
		return m, fmt.Errorf("cosefixture: message_1 wants 4 fields, array reported %d", n)
	}

	method, sc := r.ReadUnsigned()
	if sc == rcbor.SizeNone {
		return m, fmt.Errorf("cosefixture: could not read METHOD")
	}
	m.Method = EDHOCMethod(method)

	switch r.Next() {
	case rcbor.MajorUnsigned:
		suite, sc := r.ReadUnsigned()
		if sc == rcbor.SizeNone {
			return m, fmt.Errorf("cosefixture: could not read SUITES_I")
		}
		m.Suites = []uint64{suite}
	case rcbor.MajorArray:
		count := r.ReadArray()
		if count == rcbor.MaxUint {
			return m, fmt.Errorf("cosefixture: malformed SUITES_I array")
		}
		m.Suites = make([]uint64, 0, count)
		for i := uint64(0); i < count; i++ {
			v, sc := r.ReadUnsigned()
			if sc == rcbor.SizeNone {
				return m, fmt.Errorf("cosefixture: short SUITES_I array")
			}
			m.Suites = append(m.Suites, v)
		}
	default:
		return m, fmt.Errorf("cosefixture: SUITES_I is neither an integer nor an array")
	}

	key, ok := r.ReadData()
	if !ok {
		return m, fmt.Errorf("cosefixture: could not read G_X")
	}
	m.EphemeralKey = append([]byte(nil), key...)

	cid, ok := r.ReadData()
	if !ok {
		return m, fmt.Errorf("cosefixture: could not read C_I")
	}
	m.ConnectionID = append([]byte(nil), cid...)

	return m, nil
}

// SignedEnvelope is a simplified, untagged stand-in for COSE_Sign1: a
// protected header (opaque bytes, normally itself a CBOR map), an
// unprotected header expressed as alternating key/value unsigned
// integers, a payload, and a signature.
type SignedEnvelope struct {
	ProtectedHeader   []byte
	UnprotectedHeader map[uint64]uint64
	Payload           []byte
	Signature         []byte
}

// Encode writes the envelope as a 4-element CBOR array
// [protected, unprotected, payload, signature].
func (e SignedEnvelope) Encode(buf []byte) ([]byte, error) {
	w := rcbor.NewWriter(buf)
	w.OpenArray()
	w.PrependData(e.Signature)
	w.PrependData(e.Payload)

	w.OpenMap()
	keys := sortedKeys(e.UnprotectedHeader)
	for i := len(keys) - 1; i >= 0; i-- {
		k := keys[i]
		w.PrependUnsigned(e.UnprotectedHeader[k])
		w.PrependUnsigned(k)
	}
	w.WrapMap()

	w.PrependData(e.ProtectedHeader)
	w.WrapArray()
	out, err := w.Stop()
	if err != nil {
		return nil, fmt.Errorf("cosefixture: encode signed envelope: %w", err)
	}
	return out, nil
}

func sortedKeys(m map[uint64]uint64) []uint64 {
	keys := make([]uint64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// SampleMessage1 returns a small, deterministic EDHOCMessage1 useful as
// a demo fixture for cmd/cborcat and as a round-trip test corpus entry.
func SampleMessage1() EDHOCMessage1 {
	return EDHOCMessage1{
		Method:       MethodSignSign,
		Suites:       []uint64{2},
		EphemeralKey: []byte{0x8a, 0xf6, 0xf4, 0x30, 0xeb, 0xe1, 0x8d, 0x34},
		ConnectionID: []byte{0x37},
	}
}

// SampleSignedEnvelope returns a small, deterministic SignedEnvelope
// for the same purposes.
func SampleSignedEnvelope() SignedEnvelope {
	return SignedEnvelope{
		ProtectedHeader:   []byte{0xa1, 0x01, 0x26},
		UnprotectedHeader: map[uint64]uint64{4: 1},
		Payload:           []byte("edhoc"),
		Signature:         []byte{0x1, 0x2, 0x3, 0x4},
	}
}
