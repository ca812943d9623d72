package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a table name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Checksum computes the xxHash64 of a byte slice.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
