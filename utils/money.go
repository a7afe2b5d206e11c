package utils

import (
	"strconv"
	"strings"
)

// FormatMoney renders an amount in minor units, e.g. 123456 USD -> "USD 1,234.56".
func FormatMoney(amount int64, currency string) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	major := strconv.FormatInt(amount/100, 10)
	minor := amount % 100

	var b strings.Builder
	if currency != "" {
		b.WriteString(currency)
		b.WriteByte(' ')
	}
	if neg {
		b.WriteByte('-')
	}

	rem := len(major) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(major[:rem])
	for i := rem; i < len(major); i += 3 {
		b.WriteByte(',')
		b.WriteString(major[i : i+3])
	}

	b.WriteByte('.')
	if minor < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(minor, 10))
	return b.String()
}
