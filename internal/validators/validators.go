package validators

import (
	"net"
	"regexp"
	"strings"
)

// IsEmailDomainValid checks that the email's domain actually resolves.
// Format validation is left to the request binding.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

var phoneRe = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// IsPhoneNumber accepts a bare 10-digit local number or an E.164-style
// number with country prefix. SMS dispatch adds the default prefix when the
// number has none.
func IsPhoneNumber(phone string) bool {
	return phoneRe.MatchString(strings.TrimSpace(phone))
}
