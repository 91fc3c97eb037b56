package i18n

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
)

// numberStyle is how a locale's printer writes integers and fractions.
type numberStyle struct {
	zero      rune
	group     string
	decimal   string
	primary   int
	secondary int
}

// styleOf reads the grouping off the printer's own output, so en gives
// 1,234,567,890 and hi gives 1,23,45,67,890.
func styleOf(p *message.Printer) numberStyle {
	st := numberStyle{zero: '0', decimal: "."}
	if r, _ := utf8.DecodeRuneInString(p.Sprintf("%d", 0)); unicode.IsDigit(r) {
		st.zero = r
	}

	var groups []int
	run := 0
	for _, r := range p.Sprintf("%d", 1234567890) {
		if unicode.IsDigit(r) {
			run++
			continue
		}
		if st.group == "" {
			st.group = string(r)
		}
		groups = append(groups, run)
		run = 0
	}
	groups = append(groups, run)
	if len(groups) > 1 {
		st.primary = groups[len(groups)-1]
		st.secondary = groups[len(groups)-2]
	}

	sample := p.Sprintf("%.1f", 1.5)
	if sep := strings.TrimFunc(sample, unicode.IsDigit); sep != "" {
		st.decimal = sep
	}
	return st
}

func (st numberStyle) digits(s string) string {
	if st.zero == '0' {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		b.WriteRune(st.zero + (r - '0'))
	}
	return b.String()
}

// groupInt groups a string of ASCII digits.
func (st numberStyle) groupInt(s string) string {
	if st.primary <= 0 || len(s) <= st.primary {
		return st.digits(s)
	}
	parts := []string{s[len(s)-st.primary:]}
	s = s[:len(s)-st.primary]
	for len(s) > st.secondary {
		parts = append(parts, s[len(s)-st.secondary:])
		s = s[:len(s)-st.secondary]
	}
	parts = append(parts, s)

	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(st.digits(parts[i]))
		if i > 0 {
			b.WriteString(st.group)
		}
	}
	return b.String()
}

// FormatDecimal renders a number with the locale's digit grouping.
// Whole numbers print without a fraction, others with two places.
// Digits come from the decimal itself, so no magnitude overflows.
func (c *Catalog) FormatDecimal(locale string, d decimal.Decimal) string {
	st := styleOf(c.Printer(locale))

	text := d.Abs().String()
	if !d.IsInteger() {
		text = d.Abs().StringFixed(2)
	}
	intPart, frac, _ := strings.Cut(text, ".")

	var b strings.Builder
	if d.Sign() < 0 && strings.Trim(text, "0.") != "" {
		b.WriteString("-")
	}
	b.WriteString(st.groupInt(intPart))
	if frac != "" {
		b.WriteString(st.decimal)
		b.WriteString(st.digits(frac))
	}
	return b.String()
}
