package types

import (
	"fmt"
	"strings"
)

// Domain name rules.
const (
	DomainSuffix  = ".oct"
	MinDomainName = 3
	MaxDomainName = 32
)

// NormalizeDomain lowercases a domain and appends the ".oct" suffix if
// missing. It does not validate; call ParseDomain for that.
func NormalizeDomain(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	if !strings.HasSuffix(s, DomainSuffix) {
		s += DomainSuffix
	}
	return s
}

// ParseDomain validates a ".oct" domain name and returns its normalized
// form. The name part (before the suffix) must be 3-32 characters of
// lowercase letters, digits, or hyphens, and may not start or end with a
// hyphen. Input is lowercased before validation.
func ParseDomain(s string) (string, error) {
	s = NormalizeDomain(s)
	if s == "" {
		return "", fmt.Errorf("empty domain")
	}

	name := strings.TrimSuffix(s, DomainSuffix)
	if len(name) < MinDomainName {
		return "", fmt.Errorf("domain name too short: %q (min %d chars)", name, MinDomainName)
	}
	if len(name) > MaxDomainName {
		return "", fmt.Errorf("domain name too long: %q (max %d chars)", name, MaxDomainName)
	}
	if name[0] == '-' || name[len(name)-1] == '-' {
		return "", fmt.Errorf("domain name may not start or end with a hyphen: %q", name)
	}
	for _, c := range name {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' {
			continue
		}
		return "", fmt.Errorf("invalid character %q in domain name %q", c, name)
	}
	return s, nil
}

// ValidDomain reports whether s is a well-formed ".oct" domain.
func ValidDomain(s string) bool {
	_, err := ParseDomain(s)
	return err == nil
}
