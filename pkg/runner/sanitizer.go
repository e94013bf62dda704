package runner

import (
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxMessageSize is 1KB (conservative default)
	DefaultMaxMessageSize = 1024
	// EnvMaxMessageSize is the environment variable to override the default
	EnvMaxMessageSize = "DIANTI_MAX_MESSAGE_SIZE"
)

// SanitizeMessage makes server-provided text safe to print on a terminal:
// it replaces invalid UTF-8, strips control characters (ANSI escapes, NULL,
// BEL) and truncates oversized messages with an ellipsis.
func SanitizeMessage(msg string) string {
	if !utf8.ValidString(msg) {
		msg = strings.ToValidUTF8(msg, "�")
	}

	// Fast path: if no control chars, skip the rebuild.
	clean := true
	for _, r := range msg {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if !clean {
		var b strings.Builder
		b.Grow(len(msg))
		for _, r := range msg {
			if !unicode.IsControl(r) || isSafeControl(r) {
				b.WriteRune(r)
			}
		}
		msg = b.String()
	}

	limit := getMaxMessageSize()
	if len(msg) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut] + "…"
	}
	return msg
}

func isSafeControl(r rune) bool {
	return r == '\t'
}

func getMaxMessageSize() int {
	if val := os.Getenv(EnvMaxMessageSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxMessageSize
}
