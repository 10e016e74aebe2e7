// Package mocks provides test doubles for the sheets client.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	sheets "github.com/sells-group/outreach-reporter/pkg/sheets"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// GetValues provides a mock function with given fields: ctx, rangeRef
func (_m *MockClient) GetValues(ctx context.Context, rangeRef string) (*sheets.ValueRange, error) {
	ret := _m.Called(ctx, rangeRef)

	if len(ret) == 0 {
		panic("no return value specified for GetValues")
	}

	var r0 *sheets.ValueRange
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*sheets.ValueRange, error)); ok {
		return rf(ctx, rangeRef)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *sheets.ValueRange); ok {
		r0 = rf(ctx, rangeRef)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*sheets.ValueRange)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, rangeRef)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpdateValues provides a mock function with given fields: ctx, rangeRef, values
func (_m *MockClient) UpdateValues(ctx context.Context, rangeRef string, values [][]any) error {
	ret := _m.Called(ctx, rangeRef, values)

	if len(ret) == 0 {
		panic("no return value specified for UpdateValues")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, [][]any) error); ok {
		r0 = rf(ctx, rangeRef, values)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// AppendValues provides a mock function with given fields: ctx, rangeRef, values
func (_m *MockClient) AppendValues(ctx context.Context, rangeRef string, values [][]any) error {
	ret := _m.Called(ctx, rangeRef, values)

	if len(ret) == 0 {
		panic("no return value specified for AppendValues")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, [][]any) error); ok {
		r0 = rf(ctx, rangeRef, values)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
