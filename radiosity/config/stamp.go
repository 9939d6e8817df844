package config

import (
	"os/exec"
	"strings"
	"time"
)

// gitHead returns the commit checked out in the working directory.
var gitHead = func() (string, error) {
	out, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Stamp records when a run happened and which commit produced it. Outside a git checkout the
// commit is "unknown".
func (m *Metadata) Stamp(now time.Time) {
	m.Timestamp = now.UTC().Format(time.DateTime)
	m.GitCommit = "unknown"
	if commit, err := gitHead(); err == nil && commit != "" {
		m.GitCommit = commit
	}
}
