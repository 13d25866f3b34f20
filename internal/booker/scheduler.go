package booker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nberard/wanaplay-booker/internal/wanaplay"
)

const (
	// Opening happens at midnight; the hour before it drives the cadence.
	openingHour = 23
	armedMinute = 58

	// The calendar shows 15 days ahead, so the date that opens at the
	// coming midnight is now+15d.
	horizonDays = 15

	idleSleep     = 23 * time.Hour
	approachSleep = 50 * time.Minute
	armedSleep    = time.Minute
	pollInterval  = 2 * time.Second
)

// Scheduler is the top-level control loop. Single-threaded: one cycle per
// wake-up, each with its own fresh Session, no state shared
// between cycles beyond the immutable credentials and target.
type Scheduler struct {
	Client *wanaplay.Client
	Creds  wanaplay.Credentials
	Target TargetSpec
	Clock  Clock
	Log    *zap.Logger
}

// Run loops forever, or until an error or context cancellation. Any error
// outside the availability poll is fatal: it means bad input or a site
// contract change that needs a human.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		if err := s.cycle(ctx); err != nil {
			return err
		}
	}
}

// cycle performs one wake-up: re-authenticate, then evaluate the transition
// table against the current wall clock.
func (s *Scheduler) cycle(ctx context.Context) error {
	now := s.Clock.Now()
	s.Log.Info("cycle", zap.Time("now", now))

	sess, err := s.Client.Authenticate(ctx, s.Creds)
	if err != nil {
		return err
	}

	switch {
	case now.Weekday() != s.Target.Eve():
		s.Log.Info("waiting for eve of target weekday", zap.Duration("sleep", idleSleep))
		return s.Clock.Sleep(ctx, idleSleep)
	case now.Hour() != openingHour:
		s.Log.Info("approaching midnight", zap.Duration("sleep", approachSleep))
		return s.Clock.Sleep(ctx, approachSleep)
	case now.Minute() < armedMinute:
		s.Log.Info("armed for opening", zap.Duration("sleep", armedSleep))
		return s.Clock.Sleep(ctx, armedSleep)
	default:
		return s.attempt(ctx, sess, now)
	}
}

// attempt handles one opening event: poll until the target date's calendar
// becomes visible, locate the slot, book it. Exactly one submission is made
// per opening event regardless of outcome.
func (s *Scheduler) attempt(ctx context.Context, sess *wanaplay.Session, now time.Time) error {
	target := targetDate(now)
	s.Log.Info("watching opening", zap.String("target_date", target.Format("2006-01-02")))

	for {
		open, err := sess.IsOpen(ctx, target)
		if err != nil {
			return err
		}
		if open {
			break
		}
		if err := s.Clock.Sleep(ctx, pollInterval); err != nil {
			return err
		}
	}

	markup, err := sess.FetchDay(ctx, target)
	if err != nil {
		return err
	}
	offers, err := wanaplay.ParseOffers(markup)
	if err != nil {
		return err
	}
	candidates := wanaplay.MatchOffers(offers, s.Target.CourtTime)
	offer, ok := wanaplay.PickOffer(candidates)
	if !ok {
		// Zero matching offers is a normal outcome, not an error.
		s.Log.Info("no matching offer", zap.String("court_time", s.Target.CourtTime))
		return nil
	}
	s.Log.Info("booking", zap.String("id_tspl", offer.ID), zap.Int("candidates", len(candidates)))

	participant, err := sess.Participant(ctx, offer.ID)
	if err != nil {
		return err
	}
	if err := sess.Confirm(ctx, target, offer.ID, participant); err != nil {
		return err
	}

	s.verify(ctx, sess, target)
	return nil
}

// verify re-queries the bookings list after a submission. The confirmation
// response itself carries no structured payload, so this listing is the
// only trustworthy signal. Best effort: a failure here is logged, not
// propagated, since the submission already happened.
func (s *Scheduler) verify(ctx context.Context, sess *wanaplay.Session, target time.Time) {
	bookings, err := sess.Bookings(ctx)
	if err != nil {
		s.Log.Warn("could not verify booking", zap.Error(err))
		return
	}
	for _, b := range bookings {
		if sameDate(b.Date, target) && b.CourtTime == s.Target.CourtTime {
			s.Log.Info("booking confirmed",
				zap.String("date", b.Date.Format("2006-01-02")),
				zap.String("court_time", b.CourtTime),
				zap.Int("court", b.CourtNumber))
			return
		}
	}
	s.Log.Warn("booking not visible in reservations list",
		zap.String("target_date", target.Format("2006-01-02")))
}

// targetDate is now+15d normalized to a pure calendar date.
func targetDate(now time.Time) time.Time {
	t := now.AddDate(0, 0, horizonDays)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
