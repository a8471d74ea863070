// Package checksum computes and verifies the two CPF verification digits.
//
// The algorithm is a two-pass modulo-11 positional dot product:
//
//	d10 = (Σ base[i]·(i+1)) mod 11, for i = 0..8
//	d11 = (Σ digits[i]·i)   mod 11, for i = 0..9 (digits includes d10)
//
// Remainders above 9 clamp to 0.
package checksum

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// BaseLen is the number of digits the verification digits are derived from.
	BaseLen = 9
	// Len is the length of a complete, unformatted CPF.
	Len = 11
)

// ErrFormat reports input that does not carry nine leading decimal digits.
var ErrFormat = errors.New("checksum: input needs at least 9 leading digits")

// Result is the outcome of validating one input.
// Digits and Formatted are empty when the input was malformed.
type Result struct {
	Valid     bool   `json:"valid"`
	Digits    string `json:"digits"`
	Formatted string `json:"formatted"`
}

var stripper = strings.NewReplacer(".", "", "-", "")

// Validate strips punctuation from input and checks its verification digits.
//
// An 11-digit input is valid when its last two digits match the computed
// ones. Inputs of any other length are only used to compute the digits, so
// they are reported valid as long as nine leading digits exist.
func Validate(input string) Result {
	return validate(input, nil)
}

// ValidateVerbose behaves like Validate and also writes a human-readable
// explanation of the outcome to w.
func ValidateVerbose(input string, w io.Writer) Result {
	return validate(input, w)
}

func validate(input string, w io.Writer) Result {
	s := stripper.Replace(input)

	var claimed string
	hasClaim := len(s) == Len
	if hasClaim {
		claimed = s[BaseLen:]
	}

	digits, err := complete(s)
	if err != nil {
		if w != nil {
			fmt.Fprintln(w, "wrong number of characters or non-digit characters")
		}
		return Result{}
	}

	res := Result{Valid: true, Digits: digits, Formatted: Format(digits)}
	if hasClaim {
		res.Valid = claimed == digits[BaseLen:]
	}

	if w != nil {
		switch {
		case !hasClaim:
			fmt.Fprintf(w, "CPF: %s\n", res.Formatted)
		case res.Valid:
			fmt.Fprintln(w, "verification digits are correct")
		default:
			fmt.Fprintln(w, "verification digits are incorrect")
			fmt.Fprintf(w, "CPF: %s\n", res.Formatted)
		}
	}
	return res
}

// CheckDigits returns the two verification digits for the first nine
// characters of base.
func CheckDigits(base string) (string, error) {
	digits, err := complete(base)
	if err != nil {
		return "", err
	}
	return digits[BaseLen:], nil
}

// complete takes the first nine characters of s and appends both computed
// verification digits.
func complete(s string) (string, error) {
	if len(s) < BaseLen {
		return "", ErrFormat
	}
	var buf [Len]byte
	for i := 0; i < BaseLen; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return "", ErrFormat
		}
		buf[i] = c
	}
	buf[9] = verifier(buf[:9], 1)
	buf[10] = verifier(buf[:10], 0)
	return string(buf[:]), nil
}

// verifier weights digit i by i+offset and reduces the sum modulo 11.
func verifier(digits []byte, offset int) byte {
	sum := 0
	for i, c := range digits {
		sum += int(c-'0') * (i + offset)
	}
	r := sum % 11
	if r > 9 {
		r = 0
	}
	return byte('0' + r)
}

// Format renders an 11-digit string as XXX.XXX.XXX-XX.
// Inputs of any other length are returned unchanged.
func Format(digits string) string {
	if len(digits) != Len {
		return digits
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:]
}

// IsRepeated reports whether s is a full-length run of a single character,
// such as 00000000000 or 99999999999.
func IsRepeated(s string) bool {
	if len(s) != Len {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
