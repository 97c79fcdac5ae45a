package services

import (
	"github.com/mileusna/useragent"
)

// DeviceOS derives a coarse operating-system label ("Windows", "Android",
// "iOS", ...) from a raw User-Agent header. Returns "" when the agent is
// empty or unrecognized.
func DeviceOS(rawUserAgent string) string {
	if rawUserAgent == "" {
		return ""
	}
	return useragent.Parse(rawUserAgent).OS
}
