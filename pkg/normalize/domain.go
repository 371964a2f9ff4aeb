package normalize

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// EmailDomain returns the lower-cased domain of an email address, or "" when
// the address has no domain part.
func EmailDomain(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.TrimSuffix(email[at+1:], ".")
}

// RegistrableDomain returns the eTLD+1 of domain (mail.acme.co.uk -> acme.co.uk).
// Domains the public suffix list cannot reduce are returned unchanged.
func RegistrableDomain(domain string) string {
	etld1, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return domain
	}
	return etld1
}
