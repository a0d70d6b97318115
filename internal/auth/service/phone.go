package service

import (
	"strings"

	autherror "github.com/superadriano/hana-backend/internal/errors"
	"github.com/superadriano/hana-backend/pkg/constant"
)

// NormalizePhoneNumber reduces a raw phone number to the canonical
// +<countrycode><digits> form used as the verification key. Bare national
// numbers get the default country code prefixed.
func NormalizePhoneNumber(raw string) (string, error) {
	var sb strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}

	digits := sb.String()
	if len(digits) < constant.MinPhoneDigits {
		return "", autherror.ErrInvalidPhone
	}

	if len(digits) == constant.MinPhoneDigits {
		digits = constant.DefaultCountryCode + digits
	}

	return "+" + digits, nil
}
