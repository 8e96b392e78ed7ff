package uniuri

import (
	"crypto/rand"
	"errors"
)

// StdLen is the length of a bootstrap password, ~95 bits of entropy.
const StdLen = 16

// StdChars is the alphabet used by New and NewLen.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// ErrCharset is returned for an alphabet shorter than 2 or longer than 256 bytes.
var ErrCharset = errors.New("uniuri: charset length must be between 2 and 256")

// New returns a random string of StdLen characters from StdChars.
func New() (string, error) {
	return NewLenChars(StdLen, StdChars)
}

// NewLen returns a random string of the given length from StdChars.
func NewLen(length int) (string, error) {
	return NewLenChars(length, StdChars)
}

// NewLenChars returns a random string of the given length drawn from chars.
// Bytes above the largest multiple of len(chars) are rejected so every
// character is equally likely.
func NewLenChars(length int, chars []byte) (string, error) {
	if length <= 0 {
		return "", nil
	}

	clen := len(chars)
	if clen < 2 || clen > 256 { //nolint:mnd
		return "", ErrCharset
	}

	limit := 256 - (256 % clen) //nolint:mnd
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1) //nolint:mnd

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			out = append(out, chars[int(b)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
