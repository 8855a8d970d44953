// Package gravatar derives avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	defaultSize   = 200
	defaultRating = "pg"
	// defaultImage is served when the email has no Gravatar account.
	defaultImage = "mm"
)

// URL returns the Gravatar URL for the given email. The hash input is the
// lowercased, trimmed address per the Gravatar spec.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf(
		"https://www.gravatar.com/avatar/%s?s=%d&r=%s&d=%s",
		hex.EncodeToString(sum[:]), defaultSize, defaultRating, defaultImage,
	)
}
