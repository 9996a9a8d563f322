package tui

import (
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulk-renamer/go/internal/history"
	"github.com/bulk-renamer/go/internal/profile"
	"github.com/bulk-renamer/go/internal/settings"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	fsys := afero.NewMemMapFs()
	store := settings.NewStore(fsys, "/data")
	profiles := profile.NewManager(fsys, "/data/profiles")
	ledger := history.NewLedger(fsys, "/data/history.json")

	m, err := NewModel(fsys, store, profiles, ledger)
	require.NoError(t, err)
	t.Cleanup(m.queue.Close)
	return m
}

func TestStartAddRefusedWhileScanRunning(t *testing.T) {
	m := newTestModel(t)
	m.adding = true

	updated, cmd := m.startAdd([]string{"/files"})
	assert.Nil(t, cmd)

	um := updated.(Model)
	require.NotEmpty(t, um.notices)
	assert.Contains(t, um.notices[len(um.notices)-1], "already running")
}

func TestNotifyTrimsBacklog(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < maxNotices+25; i++ {
		m.notify(fmt.Sprintf("notice %d", i))
	}

	assert.Len(t, m.notices, maxNotices)
	assert.Equal(t, fmt.Sprintf("notice %d", maxNotices+24), m.notices[len(m.notices)-1])
}

func TestNextCaseTypeCycles(t *testing.T) {
	seen := make(map[string]struct{})
	c := nextCaseType("")
	for i := 0; i < 3; i++ {
		seen[string(c)] = struct{}{}
		c = nextCaseType(c)
	}
	assert.Len(t, seen, 3)
}

func TestSplitExtensions(t *testing.T) {
	assert.Equal(t, []string{"pdf", "jpg"}, splitExtensions(" .pdf, jpg ,,"))
	assert.Nil(t, splitExtensions(""))
}
