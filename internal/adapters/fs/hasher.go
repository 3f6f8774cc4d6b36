package fs

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Digest returns the xxhash of content as a hex string.
func Digest(content []byte) string {
	return strconv.FormatUint(xxhash.Sum64(content), 16)
}
