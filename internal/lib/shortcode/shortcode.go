// Package shortcode generates the public event codes used in guest URLs.
package shortcode

import "crypto/rand"

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// Length 7 gives a 36^7 keyspace; collisions are caught by the unique
	// constraint on events.www_id rather than checked up front.
	Length = 7
)

// New returns a 7-character uppercase alphanumeric code.
func New() string {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		panic("shortcode: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}
