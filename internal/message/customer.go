package message

import (
	"regexp"
	"strings"
)

// Customer is the best-effort contact extraction. Missing fields stay empty;
// nothing here is required for the invoice to compute.
type Customer struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

var (
	phoneRe      = regexp.MustCompile(`(?:\+?62|0)8[0-9]{7,12}`)
	phoneLabelRe = regexp.MustCompile(`(?i)^\s*(?:hp|telp|wa|whatsapp|phone|tel)\s*[.:]?\s*(\+?[0-9][0-9 \-]{6,})`)
	emailRe      = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	nameLabelRe  = regexp.MustCompile(`(?i)^\s*(?:nama|name|customer|pelanggan)\s*:\s*(.+)$`)
	nameUntukRe  = regexp.MustCompile(`(?i)^\s*untuk\s+(.+)$`)
	addrLabelRe  = regexp.MustCompile(`(?i)^\s*(?:alamat|address)\s*:\s*(.+)$`)
	streetRe     = regexp.MustCompile(`(?i)\b(?:jl\.?|jalan|gang|gg\.?|blok|rt|rw|kec\.?|kel\.?)\b`)
)

// isContactLine reports whether a line carries contact information rather
// than an order item.
func isContactLine(line string) bool {
	return phoneRe.MatchString(line) ||
		phoneLabelRe.MatchString(line) ||
		emailRe.MatchString(line) ||
		nameLabelRe.MatchString(line) ||
		nameUntukRe.MatchString(line) ||
		addrLabelRe.MatchString(line) ||
		streetRe.MatchString(line)
}

// ParseCustomer folds the contact lines of a message into a Customer value.
func ParseCustomer(lines []string) Customer {
	var customer Customer

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := nameLabelRe.FindStringSubmatch(line); m != nil {
			if customer.Name == "" {
				customer.Name = strings.TrimSpace(m[1])
			}
			continue
		}
		if m := nameUntukRe.FindStringSubmatch(line); m != nil && customer.Name == "" {
			customer.Name = strings.TrimSpace(m[1])
			continue
		}
		if m := addrLabelRe.FindStringSubmatch(line); m != nil {
			if customer.Address == "" {
				customer.Address = strings.TrimSpace(m[1])
			}
			continue
		}

		if customer.Email == "" {
			if email := emailRe.FindString(line); email != "" {
				customer.Email = email
				rest := strings.TrimSpace(strings.Replace(line, email, "", 1))
				line = rest
				if line == "" {
					continue
				}
			}
		}

		if customer.Phone == "" {
			if loc := phoneRe.FindStringIndex(line); loc != nil {
				customer.Phone = line[loc[0]:loc[1]]
				// Text in front of a phone number is usually the
				// customer's name: "Budi 081234567890".
				before := strings.Trim(line[:loc[0]], " \t-,:;")
				if customer.Name == "" && hasLetters(before) {
					customer.Name = before
				}
				continue
			}
			if m := phoneLabelRe.FindStringSubmatch(line); m != nil {
				customer.Phone = strings.TrimSpace(m[1])
				continue
			}
		}

		if customer.Address == "" && streetRe.MatchString(line) {
			customer.Address = line
			continue
		}

		if customer.Name == "" && hasLetters(line) {
			customer.Name = line
		}
	}

	return customer
}

func hasLetters(text string) bool {
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
