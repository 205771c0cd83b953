package quote

import "strconv"

// FormatCLP renders an integer peso amount with dot thousands separators
// and the currency marker, e.g. 1234567 -> "$1.234.567".
func FormatCLP(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	if neg {
		return "-$" + string(out)
	}
	return "$" + string(out)
}
