package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pensiondoc/internal/port"
)

// MockExtractionBackend is a mock implementation of port.ExtractionBackend.
type MockExtractionBackend struct {
	mock.Mock
}

func (m *MockExtractionBackend) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockExtractionBackend) Model() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockExtractionBackend) UploadFile(ctx context.Context, upload port.ArtifactUpload) (*port.Artifact, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.Artifact), args.Error(1)
}

func (m *MockExtractionBackend) Extract(ctx context.Context, artifact *port.Artifact, instructions string) (string, error) {
	args := m.Called(ctx, artifact, instructions)
	return args.String(0), args.Error(1)
}

func (m *MockExtractionBackend) DeleteFile(ctx context.Context, artifactID string) error {
	args := m.Called(ctx, artifactID)
	return args.Error(0)
}

func (m *MockExtractionBackend) ListFiles(ctx context.Context) ([]port.Artifact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.Artifact), args.Error(1)
}
