package validators

import (
	"net/mail"
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9 .\-]{8,20}$`)

func IsEmailValid(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func IsPhoneValid(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}
