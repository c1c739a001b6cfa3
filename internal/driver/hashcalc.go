package driver

import (
	"crypto/sha256"
	"encoding/binary"
)

// cacheKey: H(content || schema || version || options). Any change to the
// tool or to result-affecting options yields a new key.
func cacheKey(content [32]byte, version string, opts Options) CacheKey {
	h := sha256.New()
	_, _ = h.Write(content[:])
	var schema [2]byte
	binary.BigEndian.PutUint16(schema[:], diskCacheSchemaVersion)
	_, _ = h.Write(schema[:])
	_, _ = h.Write([]byte(version))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(opts.fingerprint()))
	var out CacheKey
	copy(out[:], h.Sum(nil))
	return out
}
