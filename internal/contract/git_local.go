package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"debtscan/schema"
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ListCommits implements the GitClient interface. The returned slice is
// ordered oldest first; git applies the count limit before reversing,
// so these are the most recent commits.
func (c *LocalGitClient) ListCommits(ctx context.Context, repoPath string, limit int) ([]schema.CommitInfo, error) {
	args := []string{
		"log",
		fmt.Sprintf("-n%d", limit),
		"--reverse",
		"--pretty=format:%H|%ct",
	}
	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return nil, err
	}
	return parseCommitList(out)
}

// parseCommitList parses "hash|unixtime" log lines into commit infos.
func parseCommitList(out []byte) ([]schema.CommitInfo, error) {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	commits := make([]schema.CommitInfo, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		hash, tsStr, found := strings.Cut(line, "|")
		if !found {
			return nil, fmt.Errorf("unexpected git log line %q", line)
		}
		ts, err := strconv.ParseInt(tsStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid commit timestamp %q: %w", tsStr, err)
		}
		commits = append(commits, schema.CommitInfo{Hash: hash, Timestamp: time.Unix(ts, 0)})
	}
	return commits, nil
}

// ListFilesAtRef implements the GitClient interface.
func (c *LocalGitClient) ListFilesAtRef(ctx context.Context, repoPath string, ref string) ([]string, error) {
	out, err := c.Run(ctx, repoPath, "ls-tree", "-r", "--name-only", ref)
	if err != nil {
		return nil, err
	}
	files := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(files) == 1 && files[0] == "" {
		return []string{}, nil
	}
	return files, nil
}

// ShowFileAtRef implements the GitClient interface.
func (c *LocalGitClient) ShowFileAtRef(ctx context.Context, repoPath string, ref string, path string) ([]byte, error) {
	return c.Run(ctx, repoPath, "show", ref+":"+path)
}

// GetFileTimesAtRef implements the GitClient interface. It walks the
// full log below the reference once; the first time a path appears
// (newest commit first) is its last-modified time as of that reference.
func (c *LocalGitClient) GetFileTimesAtRef(ctx context.Context, repoPath string, ref string) (map[string]time.Time, error) {
	args := []string{
		"log",
		"--format=--%ct",
		"--name-only",
		ref,
	}
	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return nil, err
	}
	return parseFileTimes(out)
}

// parseFileTimes walks "--unixtime" stamp lines followed by path lines,
// newest commit first, keeping the first time seen per path.
func parseFileTimes(out []byte) (map[string]time.Time, error) {
	times := make(map[string]time.Time)
	var current time.Time
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if after, isStamp := strings.CutPrefix(line, "--"); isStamp {
			ts, err := strconv.ParseInt(after, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid log timestamp %q: %w", after, err)
			}
			current = time.Unix(ts, 0)
			continue
		}
		if _, seen := times[line]; !seen {
			times[line] = current
		}
	}
	return times, nil
}
