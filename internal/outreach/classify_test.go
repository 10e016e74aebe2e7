package outreach

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-reporter/internal/model"
	"github.com/sells-group/outreach-reporter/pkg/hubspot"
	"github.com/sells-group/outreach-reporter/pkg/hubspot/mocks"
)

var testSets = NewPipelineSets(
	[]string{"p-creator-1", "p-creator-2"},
	[]string{"p-agency"},
	[]string{"p-affiliate"},
)

func contactSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func assocResult(contactID string, dealIDs ...int64) hubspot.AssociationResult {
	var to []hubspot.AssociationTo
	for _, d := range dealIDs {
		to = append(to, hubspot.AssociationTo{ToObjectID: d})
	}
	return hubspot.AssociationResult{From: hubspot.ObjectRef{ID: contactID}, To: to}
}

func TestClassifyEmpty(t *testing.T) {
	m := new(mocks.MockClient)

	got := Classify(context.Background(), m, testSets, nil)

	assert.Empty(t, got)
	m.AssertNotCalled(t, "BatchReadAssociations")
	m.AssertNotCalled(t, "BatchReadObjects")
}

func TestClassifyCategories(t *testing.T) {
	m := new(mocks.MockClient)

	m.On("BatchReadAssociations", mock.Anything, "contacts", "deals",
		[]string{"c1", "c2", "c3", "c4", "c5"}).
		Return(&hubspot.AssociationBatchResponse{Results: []hubspot.AssociationResult{
			assocResult("c1", 11),
			assocResult("c2", 22),
			assocResult("c3", 33),
			assocResult("c4", 44),
			assocResult("c5"),
		}}, nil)

	m.On("BatchReadObjects", mock.Anything, "deals",
		[]string{"11", "22", "33", "44"}, []string{"pipeline"}).
		Return(&hubspot.ObjectBatchResponse{Results: []hubspot.ObjectResult{
			{ID: "11", Properties: map[string]string{"pipeline": "p-creator-2"}},
			{ID: "22", Properties: map[string]string{"pipeline": "p-agency"}},
			{ID: "33", Properties: map[string]string{"pipeline": "p-affiliate"}},
			{ID: "44", Properties: map[string]string{"pipeline": "p-unmapped"}},
		}}, nil)

	got := Classify(context.Background(), m, testSets, contactSet("c1", "c2", "c3", "c4", "c5"))

	assert.Equal(t, map[string]model.Category{
		"c1": model.CategoryCreator,
		"c2": model.CategoryAgency,
		"c3": model.CategoryAffiliate,
		"c4": model.CategoryUnknown,
		"c5": model.CategoryUnknown,
	}, got)
	m.AssertExpectations(t)
}

func TestClassifyFirstMatchWins(t *testing.T) {
	m := new(mocks.MockClient)

	// Deals are scanned lowest ID first: 10 (affiliate) beats 20 (creator).
	m.On("BatchReadAssociations", mock.Anything, "contacts", "deals", []string{"c1"}).
		Return(&hubspot.AssociationBatchResponse{Results: []hubspot.AssociationResult{
			assocResult("c1", 20, 10),
		}}, nil)

	m.On("BatchReadObjects", mock.Anything, "deals", []string{"10", "20"}, []string{"pipeline"}).
		Return(&hubspot.ObjectBatchResponse{Results: []hubspot.ObjectResult{
			{ID: "10", Properties: map[string]string{"pipeline": "p-affiliate"}},
			{ID: "20", Properties: map[string]string{"pipeline": "p-creator-1"}},
		}}, nil)

	got := Classify(context.Background(), m, testSets, contactSet("c1"))

	assert.Equal(t, model.CategoryAffiliate, got["c1"])
}

func TestClassifyAssociationFailure(t *testing.T) {
	m := new(mocks.MockClient)

	m.On("BatchReadAssociations", mock.Anything, "contacts", "deals", mock.Anything).
		Return(nil, &hubspot.StatusError{StatusCode: 500, Body: "upstream"})

	got := Classify(context.Background(), m, testSets, contactSet("c1", "c2"))

	assert.Equal(t, map[string]model.Category{
		"c1": model.CategoryUnknown,
		"c2": model.CategoryUnknown,
	}, got)
	m.AssertNotCalled(t, "BatchReadObjects")
}

func TestClassifyDealReadFailure(t *testing.T) {
	m := new(mocks.MockClient)

	m.On("BatchReadAssociations", mock.Anything, "contacts", "deals", mock.Anything).
		Return(&hubspot.AssociationBatchResponse{Results: []hubspot.AssociationResult{
			assocResult("c1", 11),
		}}, nil)
	m.On("BatchReadObjects", mock.Anything, "deals", mock.Anything, mock.Anything).
		Return(nil, &hubspot.StatusError{StatusCode: 502, Body: "bad gateway"})

	got := Classify(context.Background(), m, testSets, contactSet("c1"))

	assert.Equal(t, model.CategoryUnknown, got["c1"])
}

func TestClassifySplitsBatches(t *testing.T) {
	m := new(mocks.MockClient)

	ids := make([]string, 150)
	set := make(map[string]struct{}, 150)
	for i := range ids {
		// Letter suffixes so lexicographic order matches generation order.
		ids[i] = "c" + string(rune('a'+i/26)) + string(rune('a'+i%26))
		set[ids[i]] = struct{}{}
	}

	m.On("BatchReadAssociations", mock.Anything, "contacts", "deals",
		mock.MatchedBy(func(batch []string) bool { return len(batch) == 100 })).
		Return(&hubspot.AssociationBatchResponse{}, nil).Once()
	m.On("BatchReadAssociations", mock.Anything, "contacts", "deals",
		mock.MatchedBy(func(batch []string) bool { return len(batch) == 50 })).
		Return(&hubspot.AssociationBatchResponse{}, nil).Once()

	got := Classify(context.Background(), m, testSets, set)

	require.Len(t, got, 150)
	for _, cat := range got {
		assert.Equal(t, model.CategoryUnknown, cat)
	}
	m.AssertExpectations(t)
}

func TestClassifySumInvariant(t *testing.T) {
	m := new(mocks.MockClient)

	m.On("BatchReadAssociations", mock.Anything, "contacts", "deals", mock.Anything).
		Return(&hubspot.AssociationBatchResponse{Results: []hubspot.AssociationResult{
			assocResult("c1", 11),
			assocResult("c2", 22),
		}}, nil)
	m.On("BatchReadObjects", mock.Anything, "deals", mock.Anything, mock.Anything).
		Return(&hubspot.ObjectBatchResponse{Results: []hubspot.ObjectResult{
			{ID: "11", Properties: map[string]string{"pipeline": "p-creator-1"}},
		}}, nil)

	input := contactSet("c1", "c2", "c3")
	got := Classify(context.Background(), m, testSets, input)

	var counts model.CategoryCounts
	for _, cat := range got {
		counts.Add(cat)
	}
	assert.Equal(t, len(input), counts.Total())
	assert.Equal(t, 1, counts.Creators)
	assert.Equal(t, 2, counts.Unknown)
}

func TestPipelineSetsCategory(t *testing.T) {
	assert.Equal(t, model.CategoryCreator, testSets.Category("p-creator-1"))
	assert.Equal(t, model.CategoryAgency, testSets.Category("p-agency"))
	assert.Equal(t, model.CategoryAffiliate, testSets.Category("p-affiliate"))
	assert.Equal(t, model.CategoryUnknown, testSets.Category("p-other"))
	assert.Equal(t, model.CategoryUnknown, testSets.Category(""))
}
