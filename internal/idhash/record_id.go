package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
)

// NormalizeName lowercases a participant name and collapses runs of
// whitespace to single spaces. Identity comparison always goes through
// this form.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// IdentityKey returns the duplicate-grouping key for a name and role.
func IdentityKey(name string, role domain.Role) string {
	return NormalizeName(name) + "|" + string(role)
}

// ComputeRecordID computes a deterministic record_id using SHA256.
// Formula: SHA256(normalized_name|role|week)
// Returns hex-encoded hash (64 characters).
func ComputeRecordID(name string, role domain.Role, week int) string {
	data := fmt.Sprintf("%s|%s|%d", NormalizeName(name), string(role), week)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
