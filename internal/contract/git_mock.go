package contract

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"debtscan/schema"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	callArgs := []any{ctx, repoPath}
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	ret := m.Called(callArgs...)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	return ret.String(0), ret.Error(1)
}

// ListCommits implements the GitClient interface.
func (m *MockGitClient) ListCommits(ctx context.Context, repoPath string, limit int) ([]schema.CommitInfo, error) {
	ret := m.Called(ctx, repoPath, limit)
	commits, _ := ret.Get(0).([]schema.CommitInfo)
	return commits, ret.Error(1)
}

// ListFilesAtRef implements the GitClient interface.
func (m *MockGitClient) ListFilesAtRef(ctx context.Context, repoPath string, ref string) ([]string, error) {
	ret := m.Called(ctx, repoPath, ref)
	files, _ := ret.Get(0).([]string)
	return files, ret.Error(1)
}

// ShowFileAtRef implements the GitClient interface.
func (m *MockGitClient) ShowFileAtRef(ctx context.Context, repoPath string, ref string, path string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, ref, path)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// GetFileTimesAtRef implements the GitClient interface.
func (m *MockGitClient) GetFileTimesAtRef(ctx context.Context, repoPath string, ref string) (map[string]time.Time, error) {
	ret := m.Called(ctx, repoPath, ref)
	times, _ := ret.Get(0).(map[string]time.Time)
	return times, ret.Error(1)
}
