package recordstore

import (
	"context"

	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/schema"
	"github.com/stretchr/testify/mock"
)

// MockRecordStore is a mock implementation of RecordStore for testing.
type MockRecordStore struct {
	mock.Mock
}

var _ contract.RecordStore = &MockRecordStore{} // Compile-time check

// Create implements the RecordStore interface.
func (m *MockRecordStore) Create(ctx context.Context, owner, filename string, series schema.TimeSeries, flags []schema.AnomalyFlag) (int64, error) {
	args := m.Called(ctx, owner, filename, series, flags)
	return args.Get(0).(int64), args.Error(1)
}

// Get implements the RecordStore interface.
func (m *MockRecordStore) Get(ctx context.Context, owner string, id int64) (schema.AnalysisRecord, error) {
	args := m.Called(ctx, owner, id)
	return args.Get(0).(schema.AnalysisRecord), args.Error(1)
}

// ListByOwner implements the RecordStore interface.
func (m *MockRecordStore) ListByOwner(ctx context.Context, owner string) ([]schema.RecordSummary, error) {
	args := m.Called(ctx, owner)
	summaries, _ := args.Get(0).([]schema.RecordSummary)
	return summaries, args.Error(1)
}

// GetStatus implements the RecordStore interface.
func (m *MockRecordStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// GetAllRecordRows implements the RecordStore interface.
func (m *MockRecordStore) GetAllRecordRows() ([]schema.RecordExportRow, error) {
	args := m.Called()
	rows, _ := args.Get(0).([]schema.RecordExportRow)
	return rows, args.Error(1)
}

// GetAllSampleRows implements the RecordStore interface.
func (m *MockRecordStore) GetAllSampleRows() ([]schema.SampleExportRow, error) {
	args := m.Called()
	rows, _ := args.Get(0).([]schema.SampleExportRow)
	return rows, args.Error(1)
}

// Clear implements the RecordStore interface.
func (m *MockRecordStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the RecordStore interface.
func (m *MockRecordStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
