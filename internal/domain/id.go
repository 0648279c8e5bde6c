package domain

import (
	"math/rand/v2"
	"strconv"
	"time"
)

// NewID returns an identifier in the scheme the existing database uses:
// a wall-clock timestamp followed by four random digits, e.g.
// "202601021504057831". Sessions use uuids; users and audit rows keep this
// format so legacy rows and new rows sort and join uniformly.
func NewID() string {
	return time.Now().Format("20060102150405") + strconv.Itoa(1000+rand.IntN(9000))
}
