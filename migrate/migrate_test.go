package migrate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/vcon-dev/fake-vcons/vcon"
)

const brokenDoc = `{
  "vcon": "0.0.1",
  "uuid": "0190b0c8-0000-7000-8000-000000000000",
  "created_at": "2024-09-05T21:22:52.749585+00+00:00",
  "updated_at": "2024-09-05T21:22:52.749585+00+00:00",
  "group": [{"uuid": "0190b0c8-0000-7000-8000-000000000001"}],
  "parties": [{"name": "Alice", "tel": "+14155550100"}]
}`

func TestTimestampOffsetFix(t *testing.T) {
	out, changed, err := TimestampOffsetFix{}.Apply([]byte(brokenDoc))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "2024-09-05T21:22:52.749585+00:00", gjson.GetBytes(out, "created_at").String())
	assert.Equal(t, "2024-09-05T21:22:52.749585+00:00", gjson.GetBytes(out, "updated_at").String())

	// Idempotent on repaired documents.
	_, changed, err = TimestampOffsetFix{}.Apply(out)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestStripReferences(t *testing.T) {
	out, changed, err := StripReferences{}.Apply([]byte(brokenDoc))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, gjson.GetBytes(out, "group").Exists())
	// Untouched fields survive.
	assert.Equal(t, "Alice", gjson.GetBytes(out, "parties.0.name").String())

	_, changed, err = StripReferences{}.Apply(out)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestRunRewritesBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(brokenDoc), 0o644))

	report, err := New().Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 1, report.Changed)
	assert.Equal(t, 0, report.Failed)
	require.Len(t, report.Results, 1)
	assert.ElementsMatch(t, []string{
		TimestampOffsetFix{}.Name(),
		StripReferences{}.Name(),
	}, report.Results[0].Applied)

	// The repaired file decodes and validates cleanly.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	v, err := vcon.Decode(data)
	require.NoError(t, err)
	assert.Empty(t, v.Validate())
	assert.Nil(t, v.Group)
}

func TestRunLeavesCleanFilesAlone(t *testing.T) {
	dir := t.TempDir()
	clean := `{"vcon":"0.0.1","uuid":"0190b0c8-0000-7000-8000-000000000000","created_at":"2024-09-05T21:22:52+00:00"}`
	path := filepath.Join(dir, "clean.json")
	require.NoError(t, os.WriteFile(path, []byte(clean), 0o644))

	report, err := New().Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 0, report.Changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, clean, string(data), "untouched file must not be rewritten")
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(brokenDoc), 0o644))

	report, err := New(func(o *Options) { o.DryRun = true }).Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, brokenDoc, string(data), "dry run must not rewrite files")
}
