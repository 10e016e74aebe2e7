// Package report orchestrates the daily outreach report: collect contacts,
// classify them, merge manual counts, and publish the result.
package report

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-reporter/internal/counts"
	"github.com/sells-group/outreach-reporter/internal/model"
	"github.com/sells-group/outreach-reporter/internal/outreach"
	"github.com/sells-group/outreach-reporter/pkg/hubspot"
	"github.com/sells-group/outreach-reporter/pkg/sheets"
	"github.com/sells-group/outreach-reporter/pkg/slack"
)

// Runner wires the collectors, classifier, manual counts, and publishers
// into one reporting pipeline. All dependencies are injected; the runner
// holds no global state.
type Runner struct {
	CRM      hubspot.Client
	Sheets   sheets.Client // nil disables the spreadsheet publisher
	Slack    slack.Client  // nil disables the chat publisher
	Counts   counts.Store
	Sets     outreach.PipelineSets
	Lookback time.Duration

	Worksheet string
	Channel   string

	// Now is the clock, overridable in tests. Defaults to time.Now.
	Now func() time.Time
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}

// Build fetches all data and assembles the report without publishing.
// Remote failures degrade to partial data; Build itself never fails.
func (r *Runner) Build(ctx context.Context) model.DailyReport {
	date := r.now()

	manual := model.ManualCounts{}
	if r.Counts != nil {
		m, err := r.Counts.Get(ctx, date.Format("2006-01-02"))
		if err != nil {
			zap.L().Warn("manual counts unavailable, using zeros", zap.Error(err))
		} else {
			manual = m
		}
	}
	zap.L().Info("manual counts",
		zap.Int("telegram", manual.Telegram),
		zap.Int("signal", manual.Signal),
		zap.Int("linkedin", manual.LinkedIn))

	whatsapp := outreach.CollectWhatsAppContacts(ctx, r.CRM, r.Lookback)
	email := outreach.CollectEmailReplyContacts(ctx, r.CRM, r.Lookback)

	all := make(map[string]struct{}, len(whatsapp)+len(email))
	for id := range whatsapp {
		all[id] = struct{}{}
	}
	for id := range email {
		all[id] = struct{}{}
	}

	zap.L().Info("classifying contacts via deal pipelines", zap.Int("contacts", len(all)))
	categoriesByContact := outreach.Classify(ctx, r.CRM, r.Sets, all)

	var categories model.CategoryCounts
	for id := range all {
		categories.Add(categoriesByContact[id])
	}

	channels := model.ChannelCounts{
		WhatsApp:       len(whatsapp),
		SmartleadEmail: len(email),
		LinkedIn:       manual.LinkedIn,
		Telegram:       manual.Telegram,
		Signal:         manual.Signal,
	}

	rep := model.NewDailyReport(date, channels, categories, all)
	zap.L().Info("report assembled",
		zap.String("date", rep.DateString()),
		zap.Int("total_outreach", rep.TotalOutreach()),
		zap.Int("creators", categories.Creators),
		zap.Int("agencies", categories.Agencies),
		zap.Int("affiliates", categories.Affiliates),
		zap.Int("unknown", categories.Unknown))
	return rep
}

// Publish writes the report to the spreadsheet and the chat channel. Each
// publisher's failure is logged and does not block the other; the combined
// error (if any) is returned after both have been attempted.
func (r *Runner) Publish(ctx context.Context, rep model.DailyReport) error {
	var sheetsErr, slackErr error

	if r.Sheets != nil {
		if err := sheets.UpsertDateRow(ctx, r.Sheets, r.Worksheet, rep.DateString(), rep.SheetsRow()); err != nil {
			zap.L().Error("sheets publish failed", zap.Error(err))
			sheetsErr = err
		} else {
			zap.L().Info("sheets updated", zap.String("worksheet", r.Worksheet))
		}
	}

	if r.Slack != nil {
		if err := r.Slack.PostMessage(ctx, r.Channel, rep.SlackSummary()); err != nil {
			zap.L().Error("slack publish failed", zap.Error(err))
			slackErr = err
		} else {
			zap.L().Info("slack message posted", zap.String("channel", r.Channel))
		}
	} else {
		zap.L().Info("slack not configured, skipping post")
	}

	switch {
	case sheetsErr != nil && slackErr != nil:
		return eris.Errorf("report: both publishers failed: sheets: %v; slack: %v", sheetsErr, slackErr)
	case sheetsErr != nil:
		return eris.Wrap(sheetsErr, "report: sheets publish")
	case slackErr != nil:
		return eris.Wrap(slackErr, "report: slack publish")
	}
	return nil
}

// Run builds and publishes today's report.
func (r *Runner) Run(ctx context.Context) (model.DailyReport, error) {
	rep := r.Build(ctx)
	return rep, r.Publish(ctx, rep)
}
