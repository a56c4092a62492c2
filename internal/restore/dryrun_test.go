package restore

import (
	"context"
	"testing"

	"github.com/Iron-Ham/tmux-layout/internal/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDryRun_IssuesNoCreations(t *testing.T) {
	target := topology.Topology{
		rec("dev", "editor", "/p"),
		rec("dev", "shell", "/p"),
		rec("ops", "main", "/var/ops"),
	}
	mux := newFakeMux(rec("dev", "editor", "/p"))
	dry := NewDryRun(mux)

	result, err := NewEngine(dry, nil).Reconcile(context.Background(), target)
	require.NoError(t, err)

	assert.Empty(t, mux.calls)
	assert.Len(t, mux.live, 1)
	assert.Equal(t, result.Actions, dry.Planned())
}

func TestDryRun_MatchesRealRun(t *testing.T) {
	target := topology.Topology{
		rec("ops", "main", "/var/ops"),
		rec("ops", "main", "/var/ops"),
		rec("ops", "logs", "/var/log"),
		rec("dev", "editor", "/p"),
		rec("dev", "shell", "/p"),
	}
	live := []topology.Record{rec("dev", "editor", "/p")}

	planned, err := NewEngine(NewDryRun(newFakeMux(live...)), nil).Reconcile(context.Background(), target)
	require.NoError(t, err)

	performed, err := NewEngine(newFakeMux(live...), nil).Reconcile(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, performed, planned)
}

func TestDryRun_ReportsSimulatedSessions(t *testing.T) {
	ctx := context.Background()
	dry := NewDryRun(newFakeMux())

	exists, err := dry.HasSession(ctx, "ops")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, dry.NewSession(ctx, "ops", "main", "/var/ops"))

	exists, err = dry.HasSession(ctx, "ops")
	require.NoError(t, err)
	assert.True(t, exists)

	// Reads still come from the wrapped multiplexer.
	live, err := dry.ListWindows(ctx)
	require.NoError(t, err)
	assert.Empty(t, live)
}
