package models

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	PrefixAppointment        = "APT"
	PrefixPayment            = "PAY"
	PrefixAppointmentService = "AS"
	PrefixTimeSlot           = "STS"
)

// FormatCode renders the human-readable code of a row from its
// database identity, e.g. APT-0007.
func FormatCode(prefix string, id uint) string {
	return fmt.Sprintf("%s-%04d", prefix, id)
}

// ParseCode accepts "APT-0007", "apt-7" or a bare "7".
func ParseCode(prefix, s string) (uint, bool) {
	s = strings.TrimSpace(s)
	if len(s) > len(prefix) && strings.EqualFold(s[:len(prefix)+1], prefix+"-") {
		s = s[len(prefix)+1:]
	}

	n, err := strconv.ParseUint(s, 10, 63)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
