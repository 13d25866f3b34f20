package reminder

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nberard/wanaplay-booker/internal/booker"
	"github.com/nberard/wanaplay-booker/internal/wanaplay"
)

// DefaultTelegramEndpoint is the Bot API host; tests point at an httptest
// server.
const DefaultTelegramEndpoint = "https://api.telegram.org"

const (
	reportHour = 9
	hourSleep  = time.Hour
	daySleep   = 24 * time.Hour
)

// Reminder posts a daily summary of today's bookings to a Telegram chat.
type Reminder struct {
	Client   *wanaplay.Client
	Creds    wanaplay.Credentials
	BotToken string
	ChatID   string
	Endpoint string
	Clock    booker.Clock
	Log      *zap.Logger

	hc *http.Client
}

func (r *Reminder) Run(ctx context.Context) error {
	for {
		if err := r.cycle(ctx); err != nil {
			return err
		}
	}
}

func (r *Reminder) cycle(ctx context.Context) error {
	now := r.Clock.Now()
	if now.Hour() != reportHour {
		return r.Clock.Sleep(ctx, hourSleep)
	}

	sess, err := r.Client.Authenticate(ctx, r.Creds)
	if err != nil {
		return err
	}
	bookings, err := sess.Bookings(ctx)
	if err != nil {
		return err
	}

	var today []wanaplay.Booking
	for _, b := range bookings {
		if b.Date.Year() == now.Year() && b.Date.YearDay() == now.YearDay() {
			today = append(today, b)
		}
	}
	if len(today) == 0 {
		r.Log.Info("no bookings today")
		return r.Clock.Sleep(ctx, hourSleep)
	}

	times := make([]string, len(today))
	for i, b := range today {
		times[i] = b.CourtTime
	}
	text := fmt.Sprintf("%d bookings scheduled for today at %s", len(today), strings.Join(times, " and "))
	if err := r.send(ctx, text); err != nil {
		return err
	}
	r.Log.Info("reminder sent", zap.Int("bookings", len(today)))
	return r.Clock.Sleep(ctx, daySleep)
}

func (r *Reminder) send(ctx context.Context, text string) error {
	endpoint := r.Endpoint
	if endpoint == "" {
		endpoint = DefaultTelegramEndpoint
	}
	hc := r.hc
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}

	form := url.Values{
		"chat_id": {r.ChatID},
		"text":    {text},
	}
	target := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(endpoint, "/"), r.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("telegram send: status %d", resp.StatusCode)
	}
	return nil
}
