package cryptography

import (
	"encoding/hex"

	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
)

// HashCode is the multihash function used for every tx and block digest
const HashCode = multihash.SHA2_256

// HexDigestLen is the length of a hex encoded digest
var HexDigestLen = multihash.DefaultLengths[HashCode] * 2

// Sum hashes data and returns the multihash encoded digest
func Sum(data []byte) multihash.Multihash {
	mh, err := multihash.Sum(data, HashCode, multihash.DefaultLengths[HashCode])
	if err != nil {
		//sha2-256 is always registered
		panic(err)
	}

	return mh
}

// HexDigest returns the raw digest of data, hex encoded and without the
// multihash prefix
func HexDigest(data []byte) string {
	dec, err := multihash.Decode(Sum(data))
	if err != nil {
		panic(err)
	}

	return hex.EncodeToString(dec.Digest)
}

// MultihashFromHex wraps a hex digest produced by HexDigest back into a multihash
func MultihashFromHex(digest string) (multihash.Multihash, error) {
	raw, err := hex.DecodeString(digest)
	if err != nil {
		return nil, errors.Wrap(err, "decoding hex digest")
	}

	if len(raw) != multihash.DefaultLengths[HashCode] {
		return nil, errors.Errorf("unexpected digest length %d", len(raw))
	}

	return multihash.Encode(raw, HashCode)
}
