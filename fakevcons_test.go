package fakevcons

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcon-dev/fake-vcons/faker"
)

func TestGenerateSavesToStore(t *testing.T) {
	ctx := context.Background()
	tk := New()

	v, err := tk.Generate(ctx, faker.Prompt{})
	require.NoError(t, err)
	assert.Empty(t, v.Validate())

	stored, err := tk.Store().Get(ctx, v.UUID)
	require.NoError(t, err)
	assert.Equal(t, v.Subject, stored.Subject)
}

func TestGenerateBatch(t *testing.T) {
	ctx := context.Background()
	tk := New()

	vcons, err := tk.GenerateBatch(ctx, 3, faker.Prompt{})
	require.NoError(t, err)
	assert.Len(t, vcons, 3)

	ids, err := tk.Store().List(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 3)

	_, err = tk.GenerateBatch(ctx, 0, faker.Prompt{})
	assert.Error(t, err)
}

func TestLintAndMigrateDir(t *testing.T) {
	ctx := context.Background()
	tk := New()
	dir := t.TempDir()

	v, err := tk.Generate(ctx, faker.Prompt{})
	require.NoError(t, err)
	data, err := v.EncodeIndent()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "generated.json"), data, 0o644))

	broken := `{"vcon":"0.0.1","uuid":"0190b0c8-0000-7000-8000-000000000000","created_at":"2024-09-05T21:22:52+00+00:00"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(broken), 0o644))

	report, err := tk.LintDir(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 1, report.Invalid)

	migrated, err := tk.MigrateDir(ctx, dir, false)
	require.NoError(t, err)
	assert.Equal(t, 1, migrated.Changed)

	// After migration the tree lints clean.
	report, err = tk.LintDir(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Invalid)
}
