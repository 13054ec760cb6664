// Package fracindex generates fractional index keys: short base-62 strings
// whose byte-order comparison defines a total order, and between any two of
// which a new key can always be produced without touching existing ones.
//
// A key is an integer part (a head character encoding the length, followed by
// base-62 digits) optionally followed by fractional digits. Keys never end in
// "0" in their fractional part, so appending digits always yields a strictly
// larger key. The empty string is not a key; callers use it to mean "no bound".
package fracindex

import (
	"errors"
	"fmt"
	"strings"
)

const digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// smallestInteger is the minimum representable integer part. It is reserved:
// a bare smallestInteger is not a valid key, which keeps room below it for
// fractional digits.
const smallestInteger = "A00000000000000000000000000"

// zero is the key issued for the first entry of an empty order.
const zero = "a0"

// ErrInvalidKey reports a malformed or out-of-order key argument.
var ErrInvalidKey = errors.New("invalid index key")

// KeyBetween returns a key that sorts strictly between a and b under
// byte-order comparison. An empty a means "no lower bound" and an empty b
// means "no upper bound"; KeyBetween("", "") starts a fresh order.
func KeyBetween(a, b string) (string, error) {
	if a != "" {
		if err := Validate(a); err != nil {
			return "", err
		}
	}
	if b != "" {
		if err := Validate(b); err != nil {
			return "", err
		}
	}
	if a != "" && b != "" && a >= b {
		return "", fmt.Errorf("%w: %q >= %q", ErrInvalidKey, a, b)
	}

	if a == "" {
		if b == "" {
			return zero, nil
		}
		ib, err := integerPart(b)
		if err != nil {
			return "", err
		}
		fb := b[len(ib):]
		if ib == smallestInteger {
			m, err := midpoint("", fb)
			if err != nil {
				return "", err
			}
			return ib + m, nil
		}
		if ib < b {
			return ib, nil
		}
		res, err := decrementInteger(ib)
		if err != nil {
			return "", err
		}
		if res == "" {
			return "", fmt.Errorf("%w: cannot go below %q", ErrInvalidKey, b)
		}
		return res, nil
	}

	if b == "" {
		ia, err := integerPart(a)
		if err != nil {
			return "", err
		}
		fa := a[len(ia):]
		i, err := incrementInteger(ia)
		if err != nil {
			return "", err
		}
		if i == "" {
			m, err := midpoint(fa, "")
			if err != nil {
				return "", err
			}
			return ia + m, nil
		}
		return i, nil
	}

	ia, err := integerPart(a)
	if err != nil {
		return "", err
	}
	fa := a[len(ia):]
	ib, err := integerPart(b)
	if err != nil {
		return "", err
	}
	fb := b[len(ib):]
	if ia == ib {
		m, err := midpoint(fa, fb)
		if err != nil {
			return "", err
		}
		return ia + m, nil
	}
	i, err := incrementInteger(ia)
	if err != nil {
		return "", err
	}
	if i == "" {
		return "", fmt.Errorf("%w: cannot go above %q", ErrInvalidKey, a)
	}
	if i < b {
		return i, nil
	}
	m, err := midpoint(fa, "")
	if err != nil {
		return "", err
	}
	return ia + m, nil
}

// NKeysBetween returns n distinct keys, in order, all sorting strictly
// between a and b. Useful for renumbering a whole scope with evenly spread
// short keys.
func NKeysBetween(a, b string, n int) ([]string, error) {
	if n == 0 {
		return []string{}, nil
	}
	if n == 1 {
		c, err := KeyBetween(a, b)
		if err != nil {
			return nil, err
		}
		return []string{c}, nil
	}
	if b == "" {
		c, err := KeyBetween(a, b)
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, n)
		out = append(out, c)
		for i := 0; i < n-1; i++ {
			if c, err = KeyBetween(c, b); err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	}
	if a == "" {
		c, err := KeyBetween(a, b)
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, n)
		out = append(out, c)
		for i := 0; i < n-1; i++ {
			if c, err = KeyBetween(a, c); err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		reverse(out)
		return out, nil
	}
	mid := n / 2
	c, err := KeyBetween(a, b)
	if err != nil {
		return nil, err
	}
	left, err := NKeysBetween(a, c, mid)
	if err != nil {
		return nil, err
	}
	right, err := NKeysBetween(c, b, n-mid-1)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	out = append(out, left...)
	out = append(out, c)
	out = append(out, right...)
	return out, nil
}

// Validate reports whether key is a well-formed fractional index key.
func Validate(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if key == smallestInteger {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidKey, key)
	}
	i, err := integerPart(key)
	if err != nil {
		return err
	}
	frac := key[len(i):]
	if strings.HasSuffix(frac, "0") {
		return fmt.Errorf("%w: %q has a trailing zero", ErrInvalidKey, key)
	}
	for j := 0; j < len(frac); j++ {
		if strings.IndexByte(digits, frac[j]) < 0 {
			return fmt.Errorf("%w: bad digit %q in %q", ErrInvalidKey, frac[j], key)
		}
	}
	return nil
}

// midpoint returns the shortest digit string strictly between fractions a and
// b, where an empty a means zero and an empty b means one. Neither argument
// may end in "0".
func midpoint(a, b string) (string, error) {
	if strings.HasSuffix(a, "0") || strings.HasSuffix(b, "0") {
		return "", fmt.Errorf("%w: trailing zero", ErrInvalidKey)
	}
	if b != "" {
		if a >= b {
			return "", fmt.Errorf("%w: %q >= %q", ErrInvalidKey, a, b)
		}
		// Strip the longest common prefix; the midpoint shares it.
		n := 0
		for n < len(b) {
			ca := byte('0')
			if n < len(a) {
				ca = a[n]
			}
			if ca != b[n] {
				break
			}
			n++
		}
		if n > 0 {
			m, err := midpoint(tail(a, n), b[n:])
			if err != nil {
				return "", err
			}
			return b[:n] + m, nil
		}
	}
	da := 0
	if a != "" {
		da = strings.IndexByte(digits, a[0])
		if da < 0 {
			return "", fmt.Errorf("%w: bad digit %q", ErrInvalidKey, a[0])
		}
	}
	db := len(digits)
	if b != "" {
		db = strings.IndexByte(digits, b[0])
		if db < 0 {
			return "", fmt.Errorf("%w: bad digit %q", ErrInvalidKey, b[0])
		}
	}
	if db-da > 1 {
		return string(digits[(da+db)/2]), nil
	}
	// Consecutive first digits: take b's first digit, or recurse on a's tail.
	if len(b) > 1 {
		return b[:1], nil
	}
	m, err := midpoint(tail(a, 1), "")
	if err != nil {
		return "", err
	}
	return string(digits[da]) + m, nil
}

// integerPart returns the integer portion of key, whose length is encoded by
// the head character ('a'..'z' for positive, 'A'..'Z' for negative parts).
func integerPart(key string) (string, error) {
	l, err := integerLength(key[0])
	if err != nil {
		return "", err
	}
	if l > len(key) {
		return "", fmt.Errorf("%w: %q shorter than its integer part", ErrInvalidKey, key)
	}
	for j := 1; j < l; j++ {
		if strings.IndexByte(digits, key[j]) < 0 {
			return "", fmt.Errorf("%w: bad digit %q in %q", ErrInvalidKey, key[j], key)
		}
	}
	return key[:l], nil
}

func integerLength(head byte) (int, error) {
	switch {
	case head >= 'a' && head <= 'z':
		return int(head-'a') + 2, nil
	case head >= 'A' && head <= 'Z':
		return int('Z'-head) + 2, nil
	}
	return 0, fmt.Errorf("%w: bad head %q", ErrInvalidKey, head)
}

// incrementInteger returns the next integer part after x, or "" when x is the
// maximum representable value.
func incrementInteger(x string) (string, error) {
	head := x[0]
	digs := []byte(x[1:])
	carry := true
	for i := len(digs) - 1; carry && i >= 0; i-- {
		d := strings.IndexByte(digits, digs[i]) + 1
		if d == len(digits) {
			digs[i] = '0'
		} else {
			digs[i] = digits[d]
			carry = false
		}
	}
	if carry {
		if head == 'Z' {
			return "a0", nil
		}
		if head == 'z' {
			return "", nil
		}
		h := head + 1
		if h > 'a' {
			digs = append(digs, '0')
		} else {
			digs = digs[:len(digs)-1]
		}
		return string(h) + string(digs), nil
	}
	return string(head) + string(digs), nil
}

// decrementInteger returns the integer part preceding x, or "" when x is the
// minimum representable value.
func decrementInteger(x string) (string, error) {
	head := x[0]
	digs := []byte(x[1:])
	borrow := true
	for i := len(digs) - 1; borrow && i >= 0; i-- {
		d := strings.IndexByte(digits, digs[i]) - 1
		if d == -1 {
			digs[i] = digits[len(digits)-1]
		} else {
			digs[i] = digits[d]
			borrow = false
		}
	}
	if borrow {
		if head == 'a' {
			return "Z" + digits[len(digits)-1:], nil
		}
		if head == 'A' {
			return "", nil
		}
		h := head - 1
		if h < 'Z' {
			digs = append(digs, digits[len(digits)-1])
		} else {
			digs = digs[:len(digs)-1]
		}
		return string(h) + string(digs), nil
	}
	return string(head) + string(digs), nil
}

func tail(s string, n int) string {
	if n >= len(s) {
		return ""
	}
	return s[n:]
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
