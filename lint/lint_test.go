package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcon-dev/fake-vcons/faker"
	"github.com/vcon-dev/fake-vcons/vcon"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func writeGenerated(t *testing.T, dir, name string) string {
	t.Helper()
	v, err := faker.New().Generate(context.Background(), faker.Prompt{})
	require.NoError(t, err)
	data, err := v.EncodeIndent()
	require.NoError(t, err)
	return writeFile(t, dir, name, data)
}

func TestRunValidTree(t *testing.T) {
	dir := t.TempDir()
	writeGenerated(t, dir, "a.json")
	writeGenerated(t, dir, filepath.Join("nested", "b.json"))
	writeFile(t, dir, "unrelated.json", []byte(`{"not":"a vcon"}`))

	report, err := New().Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 2, report.Valid)
	assert.Equal(t, 0, report.Invalid)
}

func TestRunReportsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	writeGenerated(t, dir, "good.json")

	bad := vcon.New()
	bad.Vcon = "9.9.9"
	bad.AddDialog(vcon.Dialog{Type: "video", Start: "nope", Parties: vcon.NewIndices(7)})
	data, err := bad.Encode()
	require.NoError(t, err)
	badPath := writeFile(t, dir, "bad.json", data)

	report, err := New().Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 1, report.Valid)
	assert.Equal(t, 1, report.Invalid)

	var badResult *FileResult
	for i := range report.Results {
		if report.Results[i].Path == badPath {
			badResult = &report.Results[i]
		}
	}
	require.NotNil(t, badResult)
	assert.False(t, badResult.Valid())
	paths := make([]string, 0, len(badResult.Issues))
	for _, issue := range badResult.Issues {
		paths = append(paths, issue.Path)
	}
	assert.Contains(t, paths, "vcon")
	assert.Contains(t, paths, "dialog[0].type")
	assert.Contains(t, paths, "dialog[0].parties")
}

func TestRunResultsSortedByPath(t *testing.T) {
	dir := t.TempDir()
	writeGenerated(t, dir, "z.json")
	writeGenerated(t, dir, "a.json")
	writeGenerated(t, dir, "m.json")

	report, err := New(func(o *Options) { o.Workers = 2 }).Run(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, report.Results, 3)
	assert.True(t, sortedByPath(report.Results), "results not sorted: %v", report.Results)
}

func sortedByPath(results []FileResult) bool {
	for i := 1; i < len(results); i++ {
		if results[i-1].Path > results[i].Path {
			return false
		}
	}
	return true
}

func TestRunSkipsEnvelopeValidation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "signed.json", []byte(`{"payload":"e30","protected":"e30","signature":"sig"}`))

	report, err := New().Run(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, 1, report.Scanned)
	assert.Equal(t, vcon.FormSigned, report.Results[0].Form)
	assert.True(t, report.Results[0].Valid())
}

func TestRunMissingDir(t *testing.T) {
	_, err := New().Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRunCanceledContext(t *testing.T) {
	dir := t.TempDir()
	for i := range 20 {
		writeGenerated(t, dir, filepath.Join("batch", string(rune('a'+i))+".json"))
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Run(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}
