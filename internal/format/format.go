package format

import "strings"

// Phone renders 10-digit NANP numbers (optionally prefixed with 1) as
// "(901) 555-0100". Anything else is returned trimmed.
func Phone(raw string) string {
	digits := nanpDigits(raw)
	if digits == "" {
		return strings.TrimSpace(raw)
	}
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
}

// TelHref returns a tel: URI for raw, or "" when it has no digits.
func TelHref(raw string) string {
	if digits := nanpDigits(raw); digits != "" {
		return "tel:+1" + digits
	}
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || (r == '+' && b.Len() == 0) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 || b.String() == "+" {
		return ""
	}
	return "tel:" + b.String()
}

func nanpDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	d := b.String()
	if len(d) == 11 && d[0] == '1' {
		d = d[1:]
	}
	if len(d) != 10 {
		return ""
	}
	return d
}
