package reminder

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nberard/wanaplay-booker/internal/wanaplay"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	f.sleeps = append(f.sleeps, d)
	return nil
}

func bookingLink(date, courtTime string, court int) string {
	return fmt.Sprintf(`<a class="lienMyRes" href="/reservation/show/%d">%s`+" "+`%s`+" "+`Court %d</a>`,
		court, date, courtTime, court)
}

// newFakeSite serves the login handshake and a fixed bookings page.
func newFakeSite(t *testing.T, bookingsMarkup string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/auth/doLogin", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "PHPSESSID", Value: "abc123"})
		w.Header().Set("Location", srv.URL+"/auth/infos")
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc("/reservation/planning2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<table></table>")
	})
	mux.HandleFunc("/plannings/espacesportifpontoise", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<div>"+bookingsMarkup+"</div>")
	})
	return srv
}

type sentMessage struct {
	path   string
	chatID string
	text   string
}

func newTelegram(t *testing.T, sent *[]sentMessage) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		*sent = append(*sent, sentMessage{
			path:   r.URL.Path,
			chatID: r.PostForm.Get("chat_id"),
			text:   r.PostForm.Get("text"),
		})
		fmt.Fprint(w, `{"ok":true}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newReminder(site, telegram *httptest.Server, clock *fakeClock) *Reminder {
	return &Reminder{
		Client:   wanaplay.NewClient(site.URL),
		Creds:    wanaplay.NewCredentials("john", "secret"),
		BotToken: "token123",
		ChatID:   "42",
		Endpoint: telegram.URL,
		Clock:    clock,
		Log:      zap.NewNop(),
		hc:       telegram.Client(),
	}
}

func TestCycleSendsTodaysBookings(t *testing.T) {
	site := newFakeSite(t,
		bookingLink("25/08/2026", "18:20", 2)+
			bookingLink("25/08/2026", "20:40", 1)+
			bookingLink("27/08/2026", "19:00", 3))
	var sent []sentMessage
	telegram := newTelegram(t, &sent)

	clock := &fakeClock{now: time.Date(2026, time.August, 25, 9, 15, 0, 0, time.UTC)}
	r := newReminder(site, telegram, clock)

	require.NoError(t, r.cycle(context.Background()))

	require.Len(t, sent, 1)
	assert.Equal(t, "/bottoken123/sendMessage", sent[0].path)
	assert.Equal(t, "42", sent[0].chatID)
	assert.Equal(t, "2 bookings scheduled for today at 18:20 and 20:40", sent[0].text)
	assert.Equal(t, []time.Duration{24 * time.Hour}, clock.sleeps)
}

func TestCycleOutsideReportHour(t *testing.T) {
	site := newFakeSite(t, bookingLink("25/08/2026", "18:20", 2))
	var sent []sentMessage
	telegram := newTelegram(t, &sent)

	clock := &fakeClock{now: time.Date(2026, time.August, 25, 14, 0, 0, 0, time.UTC)}
	r := newReminder(site, telegram, clock)

	require.NoError(t, r.cycle(context.Background()))

	assert.Empty(t, sent)
	assert.Equal(t, []time.Duration{time.Hour}, clock.sleeps)
}

func TestCycleNoBookingsToday(t *testing.T) {
	site := newFakeSite(t, bookingLink("27/08/2026", "19:00", 3))
	var sent []sentMessage
	telegram := newTelegram(t, &sent)

	clock := &fakeClock{now: time.Date(2026, time.August, 25, 9, 0, 0, 0, time.UTC)}
	r := newReminder(site, telegram, clock)

	require.NoError(t, r.cycle(context.Background()))

	assert.Empty(t, sent)
	assert.Equal(t, []time.Duration{time.Hour}, clock.sleeps)
}

func TestCycleFailsWhenLoginRejected(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	mux.HandleFunc("/auth/doLogin", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	var sent []sentMessage
	telegram := newTelegram(t, &sent)

	clock := &fakeClock{now: time.Date(2026, time.August, 25, 9, 0, 0, 0, time.UTC)}
	r := newReminder(srv, telegram, clock)

	err := r.cycle(context.Background())
	var authErr *wanaplay.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Empty(t, sent)
	assert.Empty(t, clock.sleeps)
}
