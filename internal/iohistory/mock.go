package iohistory

import (
	"github.com/stretchr/testify/mock"

	"debtscan/internal/contract"
	"debtscan/schema"
)

// MockHistoryStore is a testify mock for the HistoryStore interface.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// RecordScan mocks persisting a report.
func (m *MockHistoryStore) RecordScan(report *schema.DebtReport) (int64, error) {
	args := m.Called(report)
	return args.Get(0).(int64), args.Error(1)
}

// ListScans mocks listing recent scan records.
func (m *MockHistoryStore) ListScans(limit int) ([]schema.ScanRecord, error) {
	args := m.Called(limit)
	if records := args.Get(0); records != nil {
		return records.([]schema.ScanRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

// GetStatus mocks retrieving store status.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Clear mocks removing all recorded scans.
func (m *MockHistoryStore) Clear() error {
	return m.Called().Error(0)
}

// Close mocks closing the connection.
func (m *MockHistoryStore) Close() error {
	return m.Called().Error(0)
}
