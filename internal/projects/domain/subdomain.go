package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

const (
	subdomainBaseMax   = 30
	subdomainSuffixLen = 4
	base36             = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var (
	disallowedChars = regexp.MustCompile(`[^a-z0-9\p{Z}\s\v-]`)
	whitespaceRuns  = regexp.MustCompile(`[\p{Z}\s\v]+`)
	hyphenRuns      = regexp.MustCompile(`-+`)
	validSubdomain  = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)
)

// SubdomainBase reduces a project name to the URL-safe part of a subdomain:
// lower-cased, non [a-z0-9 -] characters dropped, whitespace runs and hyphen
// runs collapsed to one hyphen (full-width and no-break spaces count as
// whitespace), cut to 30 characters, outer hyphens trimmed.
// Names with no Latin letters or digits reduce to "".
func SubdomainBase(name string) string {
	s := strings.ToLower(name)
	s = disallowedChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	if len(s) > subdomainBaseMax {
		s = s[:subdomainBaseMax]
	}
	return strings.Trim(s, "-")
}

// GenerateSubdomain derives a subdomain from a project name plus a random
// 4-character base-36 suffix, e.g. "shibuya-salon-k3x9". Uniqueness is only
// likely; the store has the final word.
func GenerateSubdomain(name string) (string, error) {
	suffix, err := randomBase36(subdomainSuffixLen)
	if err != nil {
		return "", err
	}
	base := SubdomainBase(name)
	if base == "" {
		base = "site"
	}
	return base + "-" + suffix, nil
}

// NormalizeSubdomain lower-cases and trims a caller-supplied subdomain and
// checks it is a valid DNS label.
func NormalizeSubdomain(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !validSubdomain.MatchString(s) {
		return "", fmt.Errorf("%w: invalid subdomain %q", ErrInvalidInput, s)
	}
	return s, nil
}

func randomBase36(n int) (string, error) {
	max := big.NewInt(int64(len(base36)))
	b := make([]byte, n)
	for i := range b {
		k, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = base36[k.Int64()]
	}
	return string(b), nil
}
