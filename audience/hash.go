package audience

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const hexDigestLength = 64

// The platform requires identifiers to be normalized and SHA-256 hashed
// before upload. Identifiers that already look like hex digests are
// passed through untouched so callers may pre-hash.
func hashIdentifier(raw string) string {
	normalized := normalizeIdentifier(raw)
	if isHexDigest(normalized) {
		return normalized
	}

	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

func normalizeIdentifier(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func isHexDigest(candidate string) bool {
	if len(candidate) != hexDigestLength {
		return false
	}
	_, err := hex.DecodeString(candidate)
	return err == nil
}
