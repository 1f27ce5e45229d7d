package currency

import (
	"strconv"
	"strings"
)

// FormatINR renders whole rupees with Indian digit grouping, e.g. "₹1,25,000".
// Paise are rounded half away from zero.
func FormatINR(paise int64) string {
	negative := paise < 0
	if negative {
		paise = -paise
	}
	rupees := (paise + 50) / 100

	grouped := groupIndian(strconv.FormatInt(rupees, 10))
	if negative {
		return "-₹" + grouped
	}
	return "₹" + grouped
}

// groupIndian inserts separators after the last three digits and then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}
