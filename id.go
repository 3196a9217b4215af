package kademlia

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"

	"github.com/holiman/uint256"
)

// ID is a fixed-width node or key identifier (spec §3, §4.1). Distance is
// represented as a uint256.Int: both of the reference design's widths
// (160-bit SHA-1, 256-bit SHA-256) fit inside it without a byte-loop
// comparison, and the same type serves node IDs, key hashes, and namespace
// labels.
type ID struct {
	bits int
	val  uint256.Int
}

// Hash derives an identifier from arbitrary bytes, truncated to bits. The
// reference design names SHA-1 (160 bits) and SHA-256 (256 bits) as its two
// widths; bits beyond 160 use SHA-256, otherwise SHA-1, matching whichever
// the caller's configured width calls for.
func Hash(data []byte, bits int) ID {
	var digest []byte
	if bits <= 160 {
		sum := sha1.Sum(data)
		digest = sum[:]
	} else {
		sum := sha256.Sum256(data)
		digest = sum[:]
	}
	return maskedID(digest, bits)
}

// HashString is Hash for a UTF-8 application-level name (node names, DHT
// keys, and namespace labels are all hashed this way).
func HashString(s string, bits int) ID {
	return Hash([]byte(s), bits)
}

func maskedID(digest []byte, bits int) ID {
	var v uint256.Int
	v.SetBytes(digest)
	if bits < 256 {
		mask := new(uint256.Int).Lsh(uint256.NewInt(1), uint(bits))
		mask.Sub(mask, uint256.NewInt(1))
		v.And(&v, mask)
	}
	return ID{bits: bits, val: v}
}

// Bits reports the width this identifier was derived for.
func (id ID) Bits() int { return id.bits }

// Equal reports whether two identifiers denote the same value.
func (id ID) Equal(other ID) bool {
	return id.val.Eq(&other.val)
}

// String renders the identifier as lowercase hex, sized to its bit width.
func (id ID) String() string {
	b := id.val.Bytes32()
	n := (id.bits + 7) / 8
	return hex.EncodeToString(b[32-n:])
}

// Distance computes the XOR metric d(x, y) between two identifiers,
// interpreted as an unsigned big-endian integer (spec §3).
func Distance(a, b ID) uint256.Int {
	var d uint256.Int
	d.Xor(&a.val, &b.val)
	return d
}

// Less orders two identifiers by distance to a common target — used to sort
// candidate lists by proximity.
func Less(target, a, b ID) bool {
	da := Distance(a, target)
	db := Distance(b, target)
	return da.Lt(&db)
}

// BucketIndex returns floor(log2(d(self, other))), the k-bucket index other
// belongs in from self's routing table. The second return value is false
// iff self and other are the same identifier (spec §4.1), in which case
// there is no bucket for other — it IS self.
func BucketIndex(self, other ID) (int, bool) {
	d := Distance(self, other)
	if d.IsZero() {
		return 0, false
	}
	return d.BitLen() - 1, true
}
