package wanaplay

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Credentials carry the login identifier and the hex SHA-1 digest of the
// password, which is what the login form expects. The clear password is
// digested once at construction and never kept.
type Credentials struct {
	Login          string
	PasswordDigest string
}

func NewCredentials(login, password string) Credentials {
	sum := sha1.Sum([]byte(password))
	return Credentials{Login: login, PasswordDigest: hex.EncodeToString(sum[:])}
}

// Offer is one bookable cell of a day's planning. ID is the site-internal
// idTspl value and is only meaningful within the response it came from.
type Offer struct {
	ID   string
	Time string // HH:MM as displayed
}

// Participant is the identity fragment the confirmation form requires.
type Participant struct {
	ID   string
	Name string
}

// Booking is one confirmed reservation from the account's planning page.
type Booking struct {
	ID          string
	Date        time.Time
	CourtTime   string
	CourtNumber int
}

// MarshalJSON keeps the dd/mm/yyyy date format the control-plane consumers
// expect.
func (b Booking) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          string `json:"id"`
		Date        string `json:"date"`
		CourtTime   string `json:"court_time"`
		CourtNumber int    `json:"court_number"`
	}{
		ID:          b.ID,
		Date:        b.Date.Format(bookingDateFormat),
		CourtTime:   b.CourtTime,
		CourtNumber: b.CourtNumber,
	})
}
