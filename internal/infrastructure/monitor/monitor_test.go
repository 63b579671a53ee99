package monitor

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/backend/internal/infrastructure/auditlog"
)

func TestRefreshWithoutDependencies(t *testing.T) {
	m := New(nil, nil, nil, time.Second, nil)

	m.refresh()

	status := m.GetStatus()
	assert.False(t, status.PostgreSQL)
	assert.False(t, status.Redis)
	assert.False(t, status.AuditLog)
	assert.False(t, m.IsOnline())
	assert.WithinDuration(t, time.Now(), status.LastCheck, time.Minute)
}

func TestRefreshReportsAuditState(t *testing.T) {
	store, err := auditlog.Open(filepath.Join(t.TempDir(), "audit.db"), "audit")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Append(auditlog.Entry{Action: "task.saved", SubjectID: "sub-1"}))

	m := New(nil, nil, store, time.Second, nil)
	m.refresh()

	status := m.GetStatus()
	assert.True(t, status.AuditLog)
	assert.Equal(t, 1, status.AuditSize)
	assert.False(t, m.IsOnline())
}
