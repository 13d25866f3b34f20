package wanaplay

import (
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint is the production site. Tests point a Client at an
// httptest server instead.
const DefaultEndpoint = "http://fr.wanaplay.com/"

const (
	routeLogin       = "auth/doLogin"
	routeLanding     = "auth/infos"
	routePlanning    = "reservation/planning2"
	routeShowBooking = "reservation/takeReservationShow"
	routeConfirm     = "reservation/takeReservationBase"
	routeBookings    = "plannings/espacesportifpontoise"
)

const (
	calendarDateFormat = "2006-01-02"
	bookingDateFormat  = "02/01/2006"
)

// Client targets one wanaplay endpoint. It holds no authentication state;
// Authenticate yields a Session scoped to a single scheduling cycle.
type Client struct {
	endpoint string
	hc       *http.Client
}

func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/") + "/",
		hc: &http.Client{
			Timeout: 20 * time.Second,
			// Login success is judged by the redirect target, so the
			// client must not follow it.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *Client) route(p string) string { return c.endpoint + p }
