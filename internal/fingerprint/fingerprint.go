// Package fingerprint derives the integrity digest stored with every entry.
//
// The digest is for display and verification. It is not a lookup key and
// makes no security claim.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/rcliao/didi/internal/model"
)

// Size is the length of a hex encoded fingerprint.
const Size = sha256.Size * 2

// Fingerprint returns the hex sha256 of the entry fields. Keywords are
// normalized first, so their collection order does not change the result.
func Fingerprint(title, content string, keywords []string, createdAt time.Time) string {
	h := sha256.New()
	for _, field := range []string{
		strings.Join(model.NormalizeKeywords(keywords), ";"),
		title,
		content,
		createdAt.UTC().Format(time.RFC3339Nano),
	} {
		h.Write([]byte(field))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Of fingerprints a materialized entry.
func Of(e model.Entry) string {
	return Fingerprint(e.Title, e.Content, e.Keywords, e.CreatedAt)
}

// Verify reports whether the stored hash still matches the entry fields.
func Verify(e model.Entry) bool {
	return e.Hash == Of(e)
}
