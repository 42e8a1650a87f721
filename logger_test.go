package ffdb

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/hupe1980/ffdb/record"
	"github.com/hupe1980/ffdb/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_TableLifecycle(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	base := filepath.Join(t.TempDir(), "t")
	tbl, err := Overwrite(base, record.PointCodec{}, heap(2), WithLogger(logger))
	require.NoError(t, err)

	pushAll(t, tbl, testutil.SequentialPoints(1, 2))
	_, _, err = tbl.SearchFirst(4, func(uint64) bool { return true })
	require.NoError(t, err)
	require.NoError(t, tbl.Delete())

	var msgs []string
	dec := json.NewDecoder(&out)
	for dec.More() {
		var entry map[string]any
		require.NoError(t, dec.Decode(&entry))
		assert.Equal(t, RecordPath(base), entry["table"])
		msgs = append(msgs, entry["msg"].(string))
	}

	assert.Equal(t, []string{"table opened", "flush completed", "search completed", "table deleted"}, msgs)
}

func TestNoopLogger(t *testing.T) {
	logger := NoopLogger()
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
}
