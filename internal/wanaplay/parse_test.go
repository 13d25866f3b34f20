package wanaplay

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offerCell(class, id, displayedTime string) string {
	return fmt.Sprintf(
		`<td class=%q onclick='takeReservation("idTspl=%s")'><div class="creneau"><span>%s</span></div></td>`,
		class, id, displayedTime)
}

func planningPage(cells ...string) []byte {
	return []byte(`<html><body><table><tr>` + strings.Join(cells, "") + `</tr></table></body></html>`)
}

func TestIsForbidden(t *testing.T) {
	forbidden := []byte(`<html><body>Vous ne pouvez pas voir le planning de ce jour</body></html>`)
	assert.True(t, IsForbidden(forbidden))

	// An open day with zero offers is not forbidden.
	assert.False(t, IsForbidden(planningPage()))
	assert.False(t, IsForbidden(planningPage(offerCell("creneauLibre", "1", "09:00"))))
}

func TestParseOffers(t *testing.T) {
	markup := planningPage(
		offerCell("creneauLibre", "100", "09:00"),
		offerCell("creneauLibre", "101", "09:40"),
		// presentation class says free but availability class disagrees
		offerCell("creneauLibre creneauPris", "102", "09:40"),
		offerCell("creneauLibre", "103", "10:20"),
		// no parseable id
		`<td class="creneauLibre"><div><span>11:00</span></div></td>`,
	)

	offers, err := ParseOffers(markup)
	require.NoError(t, err)
	require.Len(t, offers, 3)
	assert.Equal(t, []Offer{
		{ID: "100", Time: "09:00"},
		{ID: "101", Time: "09:40"},
		{ID: "103", Time: "10:20"},
	}, offers)
}

func TestParseOffersEmptyDay(t *testing.T) {
	offers, err := ParseOffers(planningPage())
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestParseOfferID(t *testing.T) {
	id, err := ParseOfferID(`popup("/reservation/takeReservationShow?idTspl="12345"")`)
	require.NoError(t, err)
	assert.Equal(t, "12345", id)

	id, err = ParseOfferID(`takeReservation("idTspl=485630")`)
	require.NoError(t, err)
	assert.Equal(t, "485630", id)

	_, err = ParseOfferID(`takeReservation("date=2026-09-04")`)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParseParticipant(t *testing.T) {
	markup := []byte(`<html><body><form>
		<select id="users_0"><option value="4807">John Smith</option></select>
	</form></body></html>`)

	p, err := ParseParticipant(markup)
	require.NoError(t, err)
	assert.Equal(t, Participant{ID: "4807", Name: "John Smith"}, p)
}

func TestParseParticipantMissingField(t *testing.T) {
	_, err := ParseParticipant([]byte(`<html><body>session expired</body></html>`))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseBookings(t *testing.T) {
	markup := []byte(`<html><body>
		<a class="lienMyRes" href="/reservation/show/98765">04/09/2026` + " " + `18:20` + " " + `Court 2</a>
		<a class="lienMyRes" href="/reservation/show/98766">05/09/2026` + " " + `09:40` + " " + `Court 1</a>
		<a class="lienMyRes" href="/reservation/show/98767">broken line</a>
	</body></html>`)

	bookings, err := ParseBookings(markup)
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	assert.Equal(t, "98765", bookings[0].ID)
	assert.Equal(t, time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC), bookings[0].Date)
	assert.Equal(t, "18:20", bookings[0].CourtTime)
	assert.Equal(t, 2, bookings[0].CourtNumber)

	assert.Equal(t, "98766", bookings[1].ID)
	assert.Equal(t, 1, bookings[1].CourtNumber)
}

func TestBookingJSONDateFormat(t *testing.T) {
	b := Booking{
		ID:          "98765",
		Date:        time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		CourtTime:   "18:20",
		CourtNumber: 2,
	}
	raw, err := b.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"98765","date":"04/09/2026","court_time":"18:20","court_number":2}`, string(raw))
}
