package domain

import (
	"net/url"
	"strings"
)

const (
	countryCode = "55"
	waBase      = "https://wa.me/"
)

// WhatsAppNumber normalizes a free-form phone number to digits. Numbers with
// at least 10 digits keep their last 11 and get the country code prefix;
// shorter ones are returned as digits only.
func WhatsAppNumber(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) >= 10 {
		if len(digits) > 11 {
			digits = digits[len(digits)-11:]
		}
		return countryCode + digits
	}
	return digits
}

// WhatsAppURL returns a chat link for phone, or "" when it has no digits.
func WhatsAppURL(phone string) string {
	n := WhatsAppNumber(phone)
	if n == "" {
		return ""
	}
	return waBase + n
}

// componentEscaper undoes the query escapes that encodeURIComponent leaves
// literal, so shared links match the ones browsers build.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// ShareURL returns a WhatsApp deep link that opens a chat composer with text.
func ShareURL(text string) string {
	return waBase + "?text=" + componentEscaper.Replace(url.QueryEscape(text))
}
