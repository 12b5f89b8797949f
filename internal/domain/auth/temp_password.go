package auth

import (
	"crypto/rand"
	"math/big"
)

const (
	tempPasswordLength = 12

	lowerChars  = "abcdefghijkmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitChars  = "23456789"
	symbolChars = "!@#$%^&*-_+="
)

// GenerateTempPassword returns a one-time password for a freshly onboarded
// account: 12 characters from a CSPRNG with at least one lower, upper, digit
// and symbol. The plaintext is returned to the caller exactly once and is
// never persisted.
func GenerateTempPassword() (string, error) {
	classes := []string{lowerChars, upperChars, digitChars, symbolChars}
	all := lowerChars + upperChars + digitChars + symbolChars

	buf := make([]byte, tempPasswordLength)
	for i, class := range classes {
		ch, err := randomChar(class)
		if err != nil {
			return "", err
		}
		buf[i] = ch
	}
	for i := len(classes); i < tempPasswordLength; i++ {
		ch, err := randomChar(all)
		if err != nil {
			return "", err
		}
		buf[i] = ch
	}

	// Shuffle so the guaranteed classes are not always in the same positions.
	for i := len(buf) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

func randomChar(set string) (byte, error) {
	idx, err := randomIndex(len(set))
	if err != nil {
		return 0, err
	}
	return set[idx], nil
}

func randomIndex(n int) (int, error) {
	value, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(value.Int64()), nil
}
