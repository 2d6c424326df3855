package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Fingerprint returns a sha256 hex digest of the stored record, usable as a
// stable identifier for exports. It plays no role in verification scoring.
func (c *Certificate) Fingerprint() string {
	data, _ := json.Marshal(c)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
