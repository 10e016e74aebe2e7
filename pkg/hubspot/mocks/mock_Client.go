// Package mocks provides test doubles for the hubspot client.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	hubspot "github.com/sells-group/outreach-reporter/pkg/hubspot"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// SearchObjects provides a mock function with given fields: ctx, objectType, req
func (_m *MockClient) SearchObjects(ctx context.Context, objectType string, req hubspot.SearchRequest) (*hubspot.SearchResponse, error) {
	ret := _m.Called(ctx, objectType, req)

	if len(ret) == 0 {
		panic("no return value specified for SearchObjects")
	}

	var r0 *hubspot.SearchResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, hubspot.SearchRequest) (*hubspot.SearchResponse, error)); ok {
		return rf(ctx, objectType, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, hubspot.SearchRequest) *hubspot.SearchResponse); ok {
		r0 = rf(ctx, objectType, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*hubspot.SearchResponse)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, hubspot.SearchRequest) error); ok {
		r1 = rf(ctx, objectType, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// BatchReadAssociations provides a mock function with given fields: ctx, fromType, toType, ids
func (_m *MockClient) BatchReadAssociations(ctx context.Context, fromType string, toType string, ids []string) (*hubspot.AssociationBatchResponse, error) {
	ret := _m.Called(ctx, fromType, toType, ids)

	if len(ret) == 0 {
		panic("no return value specified for BatchReadAssociations")
	}

	var r0 *hubspot.AssociationBatchResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string, []string) (*hubspot.AssociationBatchResponse, error)); ok {
		return rf(ctx, fromType, toType, ids)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, string, []string) *hubspot.AssociationBatchResponse); ok {
		r0 = rf(ctx, fromType, toType, ids)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*hubspot.AssociationBatchResponse)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, string, []string) error); ok {
		r1 = rf(ctx, fromType, toType, ids)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// BatchReadObjects provides a mock function with given fields: ctx, objectType, ids, properties
func (_m *MockClient) BatchReadObjects(ctx context.Context, objectType string, ids []string, properties []string) (*hubspot.ObjectBatchResponse, error) {
	ret := _m.Called(ctx, objectType, ids, properties)

	if len(ret) == 0 {
		panic("no return value specified for BatchReadObjects")
	}

	var r0 *hubspot.ObjectBatchResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, []string, []string) (*hubspot.ObjectBatchResponse, error)); ok {
		return rf(ctx, objectType, ids, properties)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, []string, []string) *hubspot.ObjectBatchResponse); ok {
		r0 = rf(ctx, objectType, ids, properties)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*hubspot.ObjectBatchResponse)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, []string, []string) error); ok {
		r1 = rf(ctx, objectType, ids, properties)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// RecentEngagements provides a mock function with given fields: ctx, since, offset
func (_m *MockClient) RecentEngagements(ctx context.Context, since int64, offset int) (*hubspot.EngagementsPage, error) {
	ret := _m.Called(ctx, since, offset)

	if len(ret) == 0 {
		panic("no return value specified for RecentEngagements")
	}

	var r0 *hubspot.EngagementsPage
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, int) (*hubspot.EngagementsPage, error)); ok {
		return rf(ctx, since, offset)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int64, int) *hubspot.EngagementsPage); ok {
		r0 = rf(ctx, since, offset)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*hubspot.EngagementsPage)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int64, int) error); ok {
		r1 = rf(ctx, since, offset)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListPipelines provides a mock function with given fields: ctx, objectType
func (_m *MockClient) ListPipelines(ctx context.Context, objectType string) (*hubspot.PipelinesResponse, error) {
	ret := _m.Called(ctx, objectType)

	if len(ret) == 0 {
		panic("no return value specified for ListPipelines")
	}

	var r0 *hubspot.PipelinesResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*hubspot.PipelinesResponse, error)); ok {
		return rf(ctx, objectType)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *hubspot.PipelinesResponse); ok {
		r0 = rf(ctx, objectType)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*hubspot.PipelinesResponse)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, objectType)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
