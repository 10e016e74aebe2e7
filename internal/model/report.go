// Package model holds the value types shared across the reporting pipeline.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Category is the business bucket a contact resolves to via its deal pipeline.
type Category string

const (
	CategoryCreator   Category = "creator"
	CategoryAgency    Category = "agency"
	CategoryAffiliate Category = "affiliate"
	CategoryUnknown   Category = "unknown"
)

// ChannelCounts holds raw engagement counts per outreach channel before
// categorisation. Channels may double-count a contact that appears in more
// than one channel.
type ChannelCounts struct {
	WhatsApp       int `json:"whatsapp"`
	SmartleadEmail int `json:"smartlead_email"`
	LinkedIn       int `json:"linkedin"`
	Telegram       int `json:"telegram"`
	Signal         int `json:"signal"`
}

// CategoryCounts breaks unique contacts out by deal-pipeline category.
// The four fields always sum to the number of distinct classified contacts.
type CategoryCounts struct {
	Creators   int `json:"creators"`
	Agencies   int `json:"agencies"`
	Affiliates int `json:"affiliates"`
	Unknown    int `json:"unknown"`
}

// Add increments the bucket for the given category.
func (c *CategoryCounts) Add(cat Category) {
	switch cat {
	case CategoryCreator:
		c.Creators++
	case CategoryAgency:
		c.Agencies++
	case CategoryAffiliate:
		c.Affiliates++
	default:
		c.Unknown++
	}
}

// Total returns the sum of all four buckets.
func (c CategoryCounts) Total() int {
	return c.Creators + c.Agencies + c.Affiliates + c.Unknown
}

// ManualCounts is the per-date record of manually logged channels.
type ManualCounts struct {
	Telegram int `json:"telegram"`
	Signal   int `json:"signal"`
	LinkedIn int `json:"linkedin"`
}

// DailyReport is the immutable result of one reporting run.
type DailyReport struct {
	Date       time.Time
	Channels   ChannelCounts
	Categories CategoryCounts
	contactIDs map[string]struct{}
}

// NewDailyReport constructs a report. The contact ID set is copied so the
// report cannot be mutated through the caller's map.
func NewDailyReport(date time.Time, channels ChannelCounts, categories CategoryCounts, contactIDs map[string]struct{}) DailyReport {
	ids := make(map[string]struct{}, len(contactIDs))
	for id := range contactIDs {
		ids[id] = struct{}{}
	}
	return DailyReport{
		Date:       date,
		Channels:   channels,
		Categories: categories,
		contactIDs: ids,
	}
}

// TotalOutreach is the number of unique contacts reached across all
// CRM-sourced channels.
func (r DailyReport) TotalOutreach() int {
	return len(r.contactIDs)
}

// TotalCreators is the number of unique creator contacts reached.
func (r DailyReport) TotalCreators() int {
	return r.Categories.Creators
}

// DateString returns the report date as an ISO date (YYYY-MM-DD).
func (r DailyReport) DateString() string {
	return r.Date.Format("2006-01-02")
}

// SheetsRow returns the spreadsheet row for the report, columns A-D.
// Column order is fixed: date, creators, agencies, affiliates. Columns
// beyond D are maintained by hand in the sheet and never written here.
func (r DailyReport) SheetsRow() []any {
	return []any{
		r.DateString(),
		r.TotalCreators(),
		r.Categories.Agencies,
		r.Categories.Affiliates,
	}
}

// SlackSummary renders the report as a Slack mrkdwn message.
func (r DailyReport) SlackSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "*📊 Daily Outreach Report — %s*\n\n", r.DateString())
	fmt.Fprintf(&b, "👀  *Total unique contacts reached:* %d\n\n", r.TotalOutreach())
	b.WriteString("*By channel:*\n")
	fmt.Fprintf(&b, "  • WhatsApp:      `%d`\n", r.Channels.WhatsApp)
	fmt.Fprintf(&b, "  • Email (SmartLead replies): `%d`\n", r.Channels.SmartleadEmail)
	fmt.Fprintf(&b, "  • LinkedIn:      `%d`\n", r.Channels.LinkedIn)
	fmt.Fprintf(&b, "  • Telegram:      `%d`\n", r.Channels.Telegram)
	fmt.Fprintf(&b, "  • Signal:        `%d`\n\n", r.Channels.Signal)
	b.WriteString("*By lead type:*\n")
	fmt.Fprintf(&b, "  • Creators:      `%d`\n", r.Categories.Creators)
	fmt.Fprintf(&b, "  • Agencies:      `%d`\n", r.Categories.Agencies)
	fmt.Fprintf(&b, "  • Affiliates:    `%d`\n", r.Categories.Affiliates)
	if r.Categories.Unknown > 0 {
		fmt.Fprintf(&b, "  • Uncategorised: `%d` _(no deal in a mapped pipeline)_\n", r.Categories.Unknown)
	}
	b.WriteString("\nGreat work everyone! 💪")
	return b.String()
}
