package audit

import (
	"crypto/sha256"
	"encoding/base64"
)

// Fingerprint returns a stable identifier of a bearer token that is safe to store in audit logs.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(hash[:])
}
