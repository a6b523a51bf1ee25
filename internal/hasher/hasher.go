// Package hasher provides content hashing for content-addressed atlas
// artifacts.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Content computes the xxHash64 of data and returns a hex string
// truncated to hexLen characters (0 or >16 keeps all 16). Atlas
// filenames use 8 chars; the layout document records the full hash.
func Content(data []byte, hexLen int) string {
	return truncate(hexDigest(xxhash.Sum64(data)), hexLen)
}

// ContentReader computes the xxHash64 of a stream without buffering it.
func ContentReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return truncate(hexDigest(h.Sum64()), hexLen), nil
}

func hexDigest(v uint64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return hex.EncodeToString(b[:])
}

func truncate(full string, hexLen int) string {
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
