package site

import (
	"net/url"
	"strings"
	"time"
)

const (
	DefaultCompanyName  = "BigHearted Labs"
	DefaultTagline      = "Expert Test Automation & CI/CD Solutions"
	DefaultFooterText   = "All rights reserved."
	DefaultContactEmail = "contact@bigheartedlabs.com"
)

// Info is the company copy shared by every page.
type Info struct {
	CompanyName  string
	Tagline      string
	FooterText   string
	ContactEmail string
	Year         int
}

// NewInfo builds Info from configured values. Blank values fall back to the
// defaults; percent-encoded values (as some hosting dashboards store them)
// are decoded.
func NewInfo(companyName, tagline, footerText, contactEmail string, now time.Time) Info {
	return Info{
		CompanyName:  infoValue(companyName, DefaultCompanyName),
		Tagline:      infoValue(tagline, DefaultTagline),
		FooterText:   infoValue(footerText, DefaultFooterText),
		ContactEmail: infoValue(contactEmail, DefaultContactEmail),
		Year:         now.Year(),
	}
}

// DefaultInfo returns Info with every default applied.
func DefaultInfo() Info {
	return NewInfo("", "", "", "", time.Now())
}

func infoValue(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// MailtoHref returns the mailto link for the contact email.
func (i Info) MailtoHref() string {
	return "mailto:" + i.ContactEmail
}
