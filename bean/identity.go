package bean

import (
	"bytes"
	"encoding/binary"

	"github.com/e1732a364fed/vs_profile/wire"
	"golang.org/x/crypto/blake2b"
)

// IdentityKey is the kind followed by the encoding of b with the display name left out.
// Two records are the same profile iff their keys are equal.
func IdentityKey(b Bean) []byte {
	out := wire.NewOutput()
	out.WriteInt(int32(b.Kind()))
	encodeProtocol(out, b, modeCanonical)
	encodeExtra(out, b.GetBase(), modeCanonical)
	return out.Bytes()
}

func Equal(a, b Bean) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	return bytes.Equal(IdentityKey(a), IdentityKey(b))
}

// Hash agrees with Equal: equal records hash the same.
func Hash(b Bean) uint64 {
	sum := blake2b.Sum256(IdentityKey(b))
	return binary.BigEndian.Uint64(sum[:8])
}

// Clone returns a deep, materialized copy of b made by encoding and decoding it.
func Clone(b Bean) (Bean, error) {
	return Decode(b.Kind(), Encode(b))
}
