// Package money represents Brazilian real amounts as integer centavos.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Amount is a monetary value in centavos.
type Amount int64

// ErrInvalid is returned by Parse for input that is not a non-negative BRL amount.
var ErrInvalid = errors.New("invalid amount")

// maxIntegerDigits keeps parsed values well inside int64 centavos.
const maxIntegerDigits = 15

// Max is the largest amount Parse accepts: fifteen integer digits plus
// centavos. Sums of two amounts up to Max cannot overflow.
const Max Amount = 99_999_999_999_999_999

// Reais builds an Amount from a whole number of reais.
func Reais(r int64) Amount {
	return Amount(r * 100)
}

// Centavos returns the raw minor-unit value.
func (a Amount) Centavos() int64 {
	return int64(a)
}

// String formats the amount the way pt-BR displays currency: "R$ 2.500.000,00".
func (a Amount) String() string {
	return "R$ " + Number(a)
}

// Number formats the amount without the currency symbol: "2.500.000,00".
// It works on the integer parts so every centavo survives.
func Number(a Amount) string {
	v := int64(a)
	sign := ""
	if v < 0 {
		sign = "-"
	}
	whole, cents := v/100, v%100
	if whole < 0 {
		whole = -whole
	}
	if cents < 0 {
		cents = -cents
	}
	return fmt.Sprintf("%s%s,%02d", sign, strings.ReplaceAll(humanize.Comma(whole), ",", "."), cents)
}

// Input renders the amount for an editable field: whole reais without
// separators, or with a decimal comma when there are centavos.
func (a Amount) Input() string {
	whole, cents := int64(a)/100, int64(a)%100
	if cents < 0 {
		cents = -cents
	}
	if cents == 0 {
		return strconv.FormatInt(whole, 10)
	}
	return fmt.Sprintf("%d,%02d", whole, cents)
}

// Parse reads a user-entered amount. It accepts an optional "R$" prefix,
// "." thousands separators and a "," decimal separator ("2.520.000,50"). Without
// a comma, a single "." followed by one or two digits is read as the decimal
// point ("2520000.5"); any other dots are thousands separators.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == ' ' {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, ErrInvalid
	}

	intPart, fracPart := s, ""
	if i := strings.LastIndexByte(s, ','); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
		if fracPart == "" {
			return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
		}
	} else if strings.Count(s, ".") == 1 {
		i := strings.IndexByte(s, '.')
		if tail := s[i+1:]; len(tail) == 1 || len(tail) == 2 {
			intPart, fracPart = s[:i], tail
		}
	}
	intPart = strings.ReplaceAll(intPart, ".", "")

	if intPart == "" || len(intPart) > maxIntegerDigits || !digits(intPart) || !digits(fracPart) || len(fracPart) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	var cents int64
	if fracPart != "" {
		if len(fracPart) == 1 {
			fracPart += "0"
		}
		cents, _ = strconv.ParseInt(fracPart, 10, 64)
	}
	return Amount(whole*100 + cents), nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
