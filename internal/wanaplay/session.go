package wanaplay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// warmupDate is an arbitrary past date used for the post-login warm-up
// request. Its planning content is discarded.
const warmupDate = "2018-12-24"

// Session is the cookie-bearing HTTP context obtained from one login
// handshake. It belongs to a single scheduling cycle and is never reused
// across cycles.
type Session struct {
	client *Client
	cookie string
}

// Authenticate performs the form login with redirects disabled. The
// handshake only counts as successful when the site answers with a redirect
// to the known landing page; anything else yields an AuthError and no
// Session is built.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (*Session, error) {
	form := url.Values{
		"login":   {creds.Login},
		"sha1mdp": {creds.PasswordDigest},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.route(routeLogin), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TransportError{Op: "login request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "login", Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		return nil, &AuthError{Reason: fmt.Sprintf("expected a redirect, got status %d", resp.StatusCode)}
	}
	if loc := resp.Header.Get("Location"); loc != c.route(routeLanding) {
		return nil, &AuthError{Reason: fmt.Sprintf("unexpected redirect target %q", loc)}
	}

	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return nil, &AuthError{Reason: "login response carries no session cookie"}
	}
	pairs := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}

	s := &Session{client: c, cookie: strings.Join(pairs, "; ")}

	// Site quirk: the session only becomes usable after one planning fetch.
	// The result is thrown away and a failure here is not fatal.
	_, _ = s.postForm(ctx, routePlanning, url.Values{"date": {warmupDate}})

	return s, nil
}

func (s *Session) postForm(ctx context.Context, route string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.route(route), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TransportError{Op: "build " + route, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cookie", s.cookie)

	resp, err := s.client.hc.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "post " + route, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read " + route, Err: err}
	}
	return body, nil
}

func (s *Session) get(ctx context.Context, route string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.client.route(route), nil)
	if err != nil {
		return nil, &TransportError{Op: "build " + route, Err: err}
	}
	req.Header.Set("Cookie", s.cookie)

	resp, err := s.client.hc.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "get " + route, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read " + route, Err: err}
	}
	return body, nil
}

// FetchDay returns the raw planning markup for one date. It is fetched
// fresh on every call: offers change as the window opens and as other
// players book.
func (s *Session) FetchDay(ctx context.Context, date time.Time) ([]byte, error) {
	return s.postForm(ctx, routePlanning, url.Values{"date": {date.Format(calendarDateFormat)}})
}

// IsOpen reports whether the planning for date is visible yet. Only the
// site's fixed forbidden marker counts as closed; a visible day with zero
// offers is open.
func (s *Session) IsOpen(ctx context.Context, date time.Time) (bool, error) {
	body, err := s.FetchDay(ctx, date)
	if err != nil {
		return false, err
	}
	return !IsForbidden(body), nil
}

// Participant fetches the identity fragment the confirmation form needs for
// the given offer.
func (s *Session) Participant(ctx context.Context, offerID string) (Participant, error) {
	body, err := s.postForm(ctx, routeShowBooking, url.Values{"idTspl": {offerID}})
	if err != nil {
		return Participant{}, err
	}
	return ParseParticipant(body)
}

// Confirm submits the reservation. The site gives no structured success
// payload, so the response body is not inspected; callers wanting a
// guarantee re-query Bookings afterwards.
func (s *Session) Confirm(ctx context.Context, date time.Time, offerID string, p Participant) error {
	_, err := s.postForm(ctx, routeConfirm, url.Values{
		"date":             {date.Format(calendarDateFormat)},
		"idTspl":           {offerID},
		"commit":           {"Confirmer"},
		"nb_participants":  {"1"},
		"tab_users_id_0":   {p.ID},
		"tab_users_name_0": {p.Name},
	})
	return err
}

// Bookings returns the account's confirmed reservations. This is the
// authoritative confirmation source after a Confirm.
func (s *Session) Bookings(ctx context.Context) ([]Booking, error) {
	body, err := s.get(ctx, routeBookings)
	if err != nil {
		return nil, err
	}
	return ParseBookings(body)
}
