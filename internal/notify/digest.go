// Package notify sends a periodic insight digest for one account.
package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/terraincognita07/kira/internal/insights"
	"github.com/terraincognita07/kira/internal/models"
)

const digestRange = insights.Range30Days

type RecordSource interface {
	ListDailyRecordsInWindow(userID uint, window insights.Window) ([]models.DailyRecord, error)
}

type UserLookup interface {
	FindByEmail(email string) (models.User, error)
}

type Digest struct {
	sender   Sender
	records  RecordSource
	users    UserLookup
	email    string
	location *time.Location
	now      func() time.Time
	log      zerolog.Logger
	cron     *cron.Cron
}

func NewDigest(sender Sender, records RecordSource, users UserLookup, email string, location *time.Location, log zerolog.Logger) *Digest {
	if location == nil {
		location = time.UTC
	}
	return &Digest{
		sender:   sender,
		records:  records,
		users:    users,
		email:    email,
		location: location,
		now:      time.Now,
		log:      log,
	}
}

// Compose renders the digest text. ok is false when there is nothing to say.
func (digest *Digest) Compose() (string, bool, error) {
	user, err := digest.users.FindByEmail(digest.email)
	if err != nil {
		return "", false, fmt.Errorf("load digest user: %w", err)
	}

	window := insights.TrailingWindow(digestRange, digest.now().In(digest.location))
	records, err := digest.records.ListDailyRecordsInWindow(user.ID, window)
	if err != nil {
		return "", false, err
	}

	report := insights.BuildReport(insights.FromDailyRecords(records), digestRange, window)
	if report.Empty {
		return "", false, nil
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "<b>Your last %s</b>\n", digestRange.Timeframe())
	for _, line := range report.Insights {
		builder.WriteString("\n• ")
		builder.WriteString(html.EscapeString(line))
	}
	return builder.String(), true, nil
}

// Run composes and sends one digest.
func (digest *Digest) Run(ctx context.Context) error {
	text, ok, err := digest.Compose()
	if err != nil {
		return err
	}
	if !ok {
		digest.log.Debug().Msg("digest skipped: no insights")
		return nil
	}
	if err := digest.sender.Send(ctx, text); err != nil {
		return err
	}
	digest.log.Info().Msg("digest sent")
	return nil
}

// Start schedules Run with a standard five-field cron expression.
func (digest *Digest) Start(schedule string) error {
	digest.cron = cron.New(cron.WithLocation(digest.location))
	if _, err := digest.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := digest.Run(ctx); err != nil {
			digest.log.Warn().Err(err).Msg("digest run failed")
		}
	}); err != nil {
		return fmt.Errorf("schedule digest %q: %w", schedule, err)
	}
	digest.cron.Start()
	digest.log.Info().Str("schedule", schedule).Msg("digest scheduled")
	return nil
}

// Stop halts the scheduler and waits for a running digest to finish.
func (digest *Digest) Stop() {
	if digest.cron == nil {
		return
	}
	<-digest.cron.Stop().Done()
}
