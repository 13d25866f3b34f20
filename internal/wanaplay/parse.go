package wanaplay

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// forbiddenMarker is the fixed string the site serves while a date is still
// outside the 15-day window.
const forbiddenMarker = "Vous ne pouvez pas voir le planning"

// freeCellClass marks a bookable planning cell. Cells can carry extra
// classes when presentation and availability diverge; only a cell whose
// class is exactly this value is actually free.
const freeCellClass = "creneauLibre"

var (
	offerIDPattern     = regexp.MustCompile(`idTspl="?(\d+)`)
	bookingLinePattern = regexp.MustCompile("(.+) (.+) Court (\\d)")
)

// IsForbidden reports whether markup is the site's "planning not visible
// yet" page.
func IsForbidden(markup []byte) bool {
	return bytes.Contains(markup, []byte(forbiddenMarker))
}

// ParseOffers extracts the bookable cells of a day planning, in document
// order. Cells without a parseable idTspl are skipped.
func ParseOffers(markup []byte) ([]Offer, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, &ParseError{What: "day planning document"}
	}

	var offers []Offer
	doc.Find("." + freeCellClass).Each(func(_ int, cell *goquery.Selection) {
		if class, _ := cell.Attr("class"); class != freeCellClass {
			return
		}
		onclick, ok := cell.Attr("onclick")
		if !ok {
			return
		}
		m := offerIDPattern.FindStringSubmatch(onclick)
		if m == nil {
			return
		}
		displayed := strings.TrimSpace(cell.Children().First().Children().First().Text())
		offers = append(offers, Offer{ID: m[1], Time: displayed})
	})
	return offers, nil
}

// ParseOfferID extracts the idTspl value from a cell's onclick attribute.
func ParseOfferID(onclick string) (string, error) {
	m := offerIDPattern.FindStringSubmatch(onclick)
	if m == nil {
		return "", &ParseError{What: "idTspl in onclick attribute"}
	}
	return m[1], nil
}

// ParseParticipant reads the current user's id and display name from the
// users_0 field of the reservation form.
func ParseParticipant(markup []byte) (Participant, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return Participant{}, &ParseError{What: "reservation form document"}
	}
	field := doc.Find("#users_0").Children().First()
	if field.Length() == 0 {
		return Participant{}, &ParseError{What: "users_0 form field"}
	}
	id, ok := field.Attr("value")
	if !ok || id == "" {
		return Participant{}, &ParseError{What: "users_0 value attribute"}
	}
	return Participant{ID: id, Name: strings.TrimSpace(field.Text())}, nil
}

// ParseBookings reads the confirmed reservations from the account planning
// page. Lines that do not match the expected "date time Court n" shape are
// ignored.
func ParseBookings(markup []byte) ([]Booking, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, &ParseError{What: "bookings document"}
	}

	var bookings []Booking
	doc.Find(".lienMyRes").Each(func(_ int, link *goquery.Selection) {
		m := bookingLinePattern.FindStringSubmatch(link.Text())
		if m == nil {
			return
		}
		date, err := time.Parse(bookingDateFormat, m[1])
		if err != nil {
			return
		}
		href, _ := link.Attr("href")
		court, _ := strconv.Atoi(m[3])
		bookings = append(bookings, Booking{
			ID:          href[strings.LastIndex(href, "/")+1:],
			Date:        date,
			CourtTime:   m[2],
			CourtNumber: court,
		})
	})
	return bookings, nil
}
