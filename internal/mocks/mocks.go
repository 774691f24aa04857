// File: internal/mocks/mocks.go
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xkilldash9x/graphgen/api/schemas"
)

// -- Dataset Sink Mock --

// MockSink mocks the schemas.DatasetSink interface.
type MockSink struct {
	mock.Mock
}

var _ schemas.DatasetSink = (*MockSink)(nil)

func (m *MockSink) Name() string {
	return m.Called().String(0)
}

func (m *MockSink) Write(ctx context.Context, ds *schemas.Dataset) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return m.Called(ctx, ds).Error(0)
}
