package orderid

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"time"
)

const (
	alphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffixLength = 5
)

var pattern = regexp.MustCompile(`^ORD-\d{8}-[A-Z0-9]{5}$`)

// Generate returns ORD-YYYYMMDD-XXXXX for the UTC date of now with a random
// suffix. Uniqueness is probabilistic (36^5 suffixes per day).
// Call it only after the order row was appended.
func Generate(now time.Time) string {
	suffix := make([]byte, suffixLength)
	max := big.NewInt(int64(len(alphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// запасной вариант, если системный ГСЧ недоступен
			n = new(big.Int).SetUint64((uint64(now.UnixNano()) >> (i * 5)) % uint64(len(alphabet)))
		}
		suffix[i] = alphabet[n.Int64()]
	}
	return "ORD-" + now.UTC().Format("20060102") + "-" + string(suffix)
}

func Valid(id string) bool {
	return pattern.MatchString(id)
}
