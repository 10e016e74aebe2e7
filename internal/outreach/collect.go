// Package outreach collects active contacts from the CRM and classifies them
// into business categories via their deal pipelines.
//
// Every remote failure in this package degrades to a logged warning and a
// partial result: an undercounted report beats no report.
package outreach

import (
	"context"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/outreach-reporter/pkg/hubspot"
)

const (
	// whatsappObjectType is HubSpot's native WhatsApp message activity object.
	whatsappObjectType = "0-18"

	contactsObjectType = "contacts"
	dealsObjectType    = "deals"
)

// sinceMillis returns the epoch-millisecond cutoff for the lookback window.
func sinceMillis(now time.Time, lookback time.Duration) int64 {
	return now.Add(-lookback).UnixMilli()
}

// CollectWhatsAppContacts returns the unique contact IDs with WhatsApp
// activity inside the lookback window. It pages the CRM search endpoint with
// a server-side timestamp filter, then batch-resolves the activity IDs to
// contact IDs.
func CollectWhatsAppContacts(ctx context.Context, c hubspot.Client, lookback time.Duration) map[string]struct{} {
	contacts := make(map[string]struct{})

	var activityIDs []string
	after := ""
	since := sinceMillis(time.Now().UTC(), lookback)

	for {
		resp, err := c.SearchObjects(ctx, whatsappObjectType, hubspot.SearchRequest{
			FilterGroups: []hubspot.FilterGroup{{
				Filters: []hubspot.Filter{{
					PropertyName: "hs_timestamp",
					Operator:     "GTE",
					Value:        strconv.FormatInt(since, 10),
				}},
			}},
			Properties: []string{"hs_timestamp"},
			Limit:      hubspot.PageLimit,
			After:      after,
		})
		if err != nil {
			if hubspot.IsMissingScope(err) {
				zap.L().Warn("whatsapp activity search forbidden, check crm.objects.contacts.read scope",
					zap.Error(err))
			} else {
				zap.L().Error("whatsapp activity search failed", zap.Error(err))
			}
			break
		}

		for _, r := range resp.Results {
			activityIDs = append(activityIDs, r.ID)
		}

		after = resp.NextAfter()
		if after == "" {
			break
		}
	}

	for _, batch := range chunks(activityIDs, hubspot.BatchLimit) {
		resp, err := c.BatchReadAssociations(ctx, whatsappObjectType, contactsObjectType, batch)
		if err != nil {
			zap.L().Warn("whatsapp contact association batch failed",
				zap.Int("batch_size", len(batch)), zap.Error(err))
			continue
		}
		for _, result := range resp.Results {
			for _, assoc := range result.To {
				contacts[assoc.IDString()] = struct{}{}
			}
		}
	}

	zap.L().Info("whatsapp contacts collected",
		zap.Int("activities", len(activityIDs)),
		zap.Int("contacts", len(contacts)))
	return contacts
}

// CollectEmailReplyContacts returns the unique contact IDs that replied by
// email inside the lookback window. SmartLead syncs replies into the CRM as
// EMAIL engagements; only inbound (or direction-less) ones count.
func CollectEmailReplyContacts(ctx context.Context, c hubspot.Client, lookback time.Duration) map[string]struct{} {
	contacts := make(map[string]struct{})
	since := sinceMillis(time.Now().UTC(), lookback)
	offset := 0

	for {
		page, err := c.RecentEngagements(ctx, since, offset)
		if err != nil {
			if hubspot.IsMissingScope(err) {
				zap.L().Warn("engagement fetch forbidden, add sales-email-read scope",
					zap.Error(err))
			} else {
				zap.L().Error("engagement fetch failed", zap.Error(err))
			}
			break
		}

		if len(page.Results) == 0 {
			break
		}

		for _, item := range page.Results {
			if item.Engagement.Type != "EMAIL" {
				continue
			}
			if d := item.Metadata.Direction; d != "" && d != "INCOMING_EMAIL" {
				continue
			}
			for _, cid := range item.Associations.ContactIDs {
				contacts[strconv.FormatInt(cid, 10)] = struct{}{}
			}
		}

		if !page.HasMore {
			break
		}
		// A response missing the offset key decodes as 0; advance past the
		// page we just read rather than re-requesting it forever.
		if page.Offset <= offset {
			offset += hubspot.PageLimit
		} else {
			offset = page.Offset
		}
	}

	zap.L().Info("email reply contacts collected", zap.Int("contacts", len(contacts)))
	return contacts
}

// chunks splits ids into slices of at most size elements.
func chunks(ids []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		out = append(out, ids[start:end])
	}
	return out
}

// sortedKeys returns the set's members in ascending order, so batch layout
// and per-contact deal scans are deterministic for a given input.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
