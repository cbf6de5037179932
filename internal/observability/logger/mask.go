package logger

import "strings"

// MaskPhone masks a customer phone number, preserving only the last 4 digits.
// Invoice customers are end consumers, so their numbers never appear in logs
// in full.
func MaskPhone(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return maskLast4(value)
}

// MaskEmail masks the local part of an address while keeping the domain, so
// operators can still tell which mail provider bounced.
func MaskEmail(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	at := strings.LastIndex(value, "@")
	if at <= 0 {
		return maskLast4(value)
	}
	return maskLast4(value[:at]) + value[at:]
}

func maskLast4(value string) string {
	if len(value) <= 4 {
		return "****" + value
	}
	return "****" + value[len(value)-4:]
}
