// Package security keeps credentials out of terminal and log output.
package security

import (
	"regexp"
	"strings"
)

// sensitivePatterns match source credentials wherever they appear in
// free-form text.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(token|bearer|secret|password)[=:\s]+["']?([^\s"']+)["']?`),
	regexp.MustCompile(`\bsecret_[A-Za-z0-9]{20,}`),
	regexp.MustCompile(`\bntn_[A-Za-z0-9]{20,}`),
}

// MaskCredential masks a credential, keeping the first four characters
// so a user can still tell which token is configured.
func MaskCredential(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 8 {
		return "***"
	}
	return value[:4] + strings.Repeat("*", 8)
}

// MaskInString masks any credential-shaped substring in free-form text,
// such as an error message about to be logged.
func MaskInString(input string) string {
	result := input
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			for _, sep := range []string{"=", ":"} {
				if parts := strings.SplitN(match, sep, 2); len(parts) == 2 {
					return parts[0] + sep + MaskCredential(strings.Trim(parts[1], "\"' "))
				}
			}
			return MaskCredential(match)
		})
	}
	return result
}
