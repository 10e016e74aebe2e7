package outreach

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/outreach-reporter/internal/model"
	"github.com/sells-group/outreach-reporter/pkg/hubspot"
)

// PipelineSets holds the configured deal-pipeline IDs per category. The three
// sets are expected to be disjoint; membership decides a contact's category.
type PipelineSets struct {
	Creator   map[string]struct{}
	Agency    map[string]struct{}
	Affiliate map[string]struct{}
}

// NewPipelineSets builds PipelineSets from the configured ID lists.
func NewPipelineSets(creator, agency, affiliate []string) PipelineSets {
	return PipelineSets{
		Creator:   toSet(creator),
		Agency:    toSet(agency),
		Affiliate: toSet(affiliate),
	}
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// Category maps a pipeline ID to its configured category, or Unknown.
func (s PipelineSets) Category(pipelineID string) model.Category {
	if _, ok := s.Creator[pipelineID]; ok {
		return model.CategoryCreator
	}
	if _, ok := s.Agency[pipelineID]; ok {
		return model.CategoryAgency
	}
	if _, ok := s.Affiliate[pipelineID]; ok {
		return model.CategoryAffiliate
	}
	return model.CategoryUnknown
}

// Classify resolves each contact to a category through its deals:
//
//  1. batch-read contact→deal associations
//  2. batch-read each deal's pipeline property
//  3. scan each contact's deals, lowest deal ID first; the first deal whose
//     pipeline belongs to a configured set decides the category
//
// A contact with no deals, or whose lookups failed, is Unknown. Failed
// batches are logged and skipped, never retried.
func Classify(ctx context.Context, c hubspot.Client, sets PipelineSets, contactIDs map[string]struct{}) map[string]model.Category {
	result := make(map[string]model.Category, len(contactIDs))
	if len(contactIDs) == 0 {
		return result
	}

	ids := sortedKeys(contactIDs)

	// Stage 1: contact → deal IDs
	contactDeals := make(map[string][]string, len(ids))
	for _, id := range ids {
		contactDeals[id] = nil
	}
	for _, batch := range chunks(ids, hubspot.BatchLimit) {
		resp, err := c.BatchReadAssociations(ctx, contactsObjectType, dealsObjectType, batch)
		if err != nil {
			zap.L().Warn("contact to deal association batch failed",
				zap.Int("batch_size", len(batch)), zap.Error(err))
			continue
		}
		for _, r := range resp.Results {
			if _, ok := contactDeals[r.From.ID]; !ok {
				continue
			}
			dealIDs := make([]string, 0, len(r.To))
			for _, assoc := range r.To {
				dealIDs = append(dealIDs, assoc.IDString())
			}
			contactDeals[r.From.ID] = dealIDs
		}
	}

	// Stage 2: deal → pipeline ID
	dealSet := make(map[string]struct{})
	for _, deals := range contactDeals {
		for _, d := range deals {
			dealSet[d] = struct{}{}
		}
	}

	dealPipeline := make(map[string]string, len(dealSet))
	for _, batch := range chunks(sortedKeys(dealSet), hubspot.BatchLimit) {
		resp, err := c.BatchReadObjects(ctx, dealsObjectType, batch, []string{"pipeline"})
		if err != nil {
			zap.L().Warn("deal batch read failed",
				zap.Int("batch_size", len(batch)), zap.Error(err))
			continue
		}
		for _, r := range resp.Results {
			dealPipeline[r.ID] = r.Properties["pipeline"]
		}
	}

	// Stage 3: first matching deal wins, lowest deal ID first
	for contactID, deals := range contactDeals {
		sort.Strings(deals)
		category := model.CategoryUnknown
		for _, dealID := range deals {
			if cat := sets.Category(dealPipeline[dealID]); cat != model.CategoryUnknown {
				category = cat
				break
			}
		}
		result[contactID] = category
	}

	return result
}
