package invariant

import (
	"regexp"
	"unicode"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

const nifLength = 9

// ValidNIF validates a 9-digit taxpayer identifier. The check digit is the
// weighted sum of the first 8 digits (weights 9 down to 2) mod 11, subtracted
// from 11, clamped to 0 when the result exceeds 9.
func ValidNIF(nif string) bool {
	if len(nif) != nifLength {
		return false
	}
	sum := 0
	for i := 0; i < nifLength; i++ {
		ch := nif[i]
		if ch < '0' || ch > '9' {
			return false
		}
		if i < nifLength-1 {
			sum += int(ch-'0') * (nifLength - i)
		}
	}
	check := 11 - sum%11
	if check > 9 {
		check = 0
	}
	return check == int(nif[nifLength-1]-'0')
}

// CheckNIF returns ErrInvalidNIF when the checksum does not hold.
func CheckNIF(nif string) error {
	if !ValidNIF(nif) {
		return domain.ErrInvalidNIF
	}
	return nil
}

// CheckPassword enforces the password policy: at least 8 characters, one
// uppercase letter and one digit, letters and digits only.
func CheckPassword(password string) error {
	if len(password) < 8 {
		return domain.ErrInvalidPassword
	}
	var upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
		default:
			return domain.ErrInvalidPassword
		}
	}
	if !upper || !digit {
		return domain.ErrInvalidPassword
	}
	return nil
}

var personNameRe = regexp.MustCompile(`^[a-zA-Z\s-]*$`)

// CheckPersonName rejects user names containing anything but letters, spaces,
// and hyphens.
func CheckPersonName(name string) error {
	if !personNameRe.MatchString(name) {
		return domain.ErrInvalidName
	}
	return nil
}

// CheckBalance rejects negative balances.
func CheckBalance(balance float64) error {
	if balance < 0 {
		return domain.ErrInvalidBalance
	}
	return nil
}

// CheckCanteenDiscount rejects discounts outside 0..100.
func CheckCanteenDiscount(discount int) error {
	if discount < 0 || discount > 100 {
		return domain.ErrInvalidDiscount
	}
	return nil
}
