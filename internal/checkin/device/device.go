// Package device derives display-friendly device metadata from the browser's
// User-Agent. The result is stored with the answer set so practitioners can
// see what kind of device a check-in came from.
package device

import (
	"strings"

	"github.com/mssola/useragent"

	"checkin/internal/checkin/answers"
)

// FromUserAgent parses a raw User-Agent header into answer-set device
// metadata. An empty or unparseable agent reads as an unknown device.
func FromUserAgent(raw string) answers.Device {
	return answers.Device{
		Name:   ParseUserAgent(raw),
		Mobile: useragent.New(raw).Mobile(),
	}
}

// ParseUserAgent renders a user agent as "Browser on Platform/OS".
func ParseUserAgent(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Unknown Device"
	}

	ua := useragent.New(raw)
	browser, _ := ua.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}

	where := ua.OS()
	if where == "" {
		where = ua.Platform()
	}
	if where == "" {
		where = "Unknown Platform"
	}

	return browser + " on " + where
}
