package domain

import "strings"

const countryPrefix = "55"

// Phone is the canonical customer identity derived from raw phone input.
// The zero value is not valid; construct through NormalizePhone.
type Phone struct {
	area   string
	number string
}

// NormalizePhone canonicalizes arbitrary phone input. Every non-digit is
// stripped, a leading country prefix is removed so re-entered canonical
// numbers don't double up, and the extra mobile "9" introduced by the
// area-code migration is collapsed back to the 8-digit legacy form.
// Normalizing an already-normalized number yields the same result.
func NormalizePhone(raw string) (Phone, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, countryPrefix) {
		digits = digits[len(countryPrefix):]
	}
	if len(digits) != 10 && len(digits) != 11 {
		return Phone{}, ErrInvalidPhone
	}
	area, number := digits[:2], digits[2:]
	if len(number) == 9 && number[0] == '9' {
		number = number[1:]
	}
	return Phone{area: area, number: number}, nil
}

// Canonical is the country-prefixed form used to address the messaging
// session.
func (p Phone) Canonical() string {
	return countryPrefix + p.area + p.number
}

// StoreKey is the prefix-free form persisted as the customer primary key.
func (p Phone) StoreKey() string {
	return p.area + p.number
}

// Display renders the number for humans, e.g. "(11) 8765-4321".
func (p Phone) Display() string {
	split := len(p.number) - 4
	return "(" + p.area + ") " + p.number[:split] + "-" + p.number[split:]
}
