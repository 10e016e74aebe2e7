// Package mocks provides test doubles for the slack client.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// PostMessage provides a mock function with given fields: ctx, channel, text
func (_m *MockClient) PostMessage(ctx context.Context, channel string, text string) error {
	ret := _m.Called(ctx, channel, text)

	if len(ret) == 0 {
		panic("no return value specified for PostMessage")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string) error); ok {
		r0 = rf(ctx, channel, text)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// PostEphemeral provides a mock function with given fields: ctx, channel, user, text
func (_m *MockClient) PostEphemeral(ctx context.Context, channel string, user string, text string) error {
	ret := _m.Called(ctx, channel, user, text)

	if len(ret) == 0 {
		panic("no return value specified for PostEphemeral")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string, string) error); ok {
		r0 = rf(ctx, channel, user, text)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
