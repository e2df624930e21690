package logger

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

var hashSalt string

// InitHashSalt loads the log hash salt from LOG_HASH_SALT, generating a
// random per-process salt when unset. Hashed identifiers then stay
// correlatable within one process lifetime but not across restarts.
func InitHashSalt() {
	hashSalt = os.Getenv("LOG_HASH_SALT")
	if hashSalt == "" {
		buf := make([]byte, 16)
		_, _ = rand.Read(buf)
		hashSalt = hex.EncodeToString(buf)
	}
}

// InitHashSaltForTesting sets a fixed salt so tests get stable hashes.
func InitHashSaltForTesting(salt string) {
	hashSalt = salt
}

// HashTelegramID creates a privacy-preserving hash of an external user
// identifier. This allows tracking user actions in logs without exposing
// actual identifiers.
func HashTelegramID(telegramID string) string {
	data := fmt.Sprintf("%s:%s", telegramID, hashSalt)
	hash := sha256.Sum256([]byte(data))
	// Return first 8 characters for readability
	return hex.EncodeToString(hash[:])[:8]
}

// SanitizeDescription redacts user-entered free text while preserving
// length information for debugging. Message bodies and extracted
// descriptions must never appear in logs in clear.
func SanitizeDescription(desc string) string {
	if desc == "" {
		return "<empty>"
	}

	words := strings.Fields(desc)
	return fmt.Sprintf("<redacted: %d words, %d chars>", len(words), len(desc))
}

// SanitizeText is a general-purpose sanitizer for any user-provided text.
func SanitizeText(text string) string {
	if text == "" {
		return "<empty>"
	}

	return fmt.Sprintf("<%d chars>", len(text))
}
