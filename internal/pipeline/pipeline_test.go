package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/smashtvedit/internal/fixture"
	"github.com/retroenv/smashtvedit/internal/level"
	"github.com/retroenv/smashtvedit/internal/options"
	"github.com/retroenv/smashtvedit/internal/rom"
)

func writeInput(t *testing.T, dir string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, "smashtv.sfc")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("Failed to create input file: %v", err)
	}
	return path
}

func newTestPipeline(t *testing.T, input, dir string) *Pipeline {
	t.Helper()
	var opts options.Program
	opts.Input = input
	opts.Dir = dir
	return New(log.NewTestLogger(t), opts)
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, fixture.New().Build())
	p := newTestPipeline(t, input, dir)
	ctx := context.Background()

	session, err := p.Load(ctx)
	assert.NoError(t, err)
	assert.Len(t, session.Arenas, level.ArenaCount)

	relocated, err := p.Relocated(session)
	assert.NoError(t, err)
	assert.False(t, relocated)

	session.Arenas[5].CompletionThreshold = 3
	session.Arenas[5].Waves = append(session.Arenas[5].Waves, session.Arenas[5].Waves[0])

	path, err := p.Save(ctx, session)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, OutputName), path)

	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, int64(rom.ExpandedSize), info.Size())

	// the edited file loads again and keeps the edits
	reloaded, err := newTestPipeline(t, path, t.TempDir()).Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint8(3), reloaded.Arenas[5].CompletionThreshold)
	assert.Len(t, reloaded.Arenas[5].Waves, 2)
}

func TestSaveRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, fixture.New().Build())
	output := filepath.Join(dir, OutputName)
	assert.NoError(t, os.Rename(input, output))

	p := newTestPipeline(t, output, dir)
	session, err := p.Load(context.Background())
	assert.NoError(t, err)

	_, err = p.Save(context.Background(), session)
	assert.True(t, errors.Is(err, ErrOverwriteInput))
}

func TestSaveKeepsImageOnError(t *testing.T) {
	dir := t.TempDir()
	p := newTestPipeline(t, "", dir)

	img := rom.New(fixture.New().Build())
	session, err := p.LoadImage(context.Background(), "", img)
	assert.NoError(t, err)

	session.Arenas = session.Arenas[:10]
	_, err = p.Save(context.Background(), session)
	var countErr *level.WrongArenaCountError
	assert.True(t, errors.As(err, &countErr))
	assert.Equal(t, fixture.Size, img.Len())

	_, err = os.Stat(filepath.Join(dir, OutputName))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	_, err := newTestPipeline(t, filepath.Join(dir, "missing.sfc"), dir).Load(ctx)
	assert.Error(t, err)

	fix := fixture.New()
	fix.Arena(1, 3).Waves[0][0] = 19
	input := writeInput(t, dir, fix.Build())
	_, err = newTestPipeline(t, input, dir).Load(ctx)
	var readErr *level.ReadError
	assert.True(t, errors.As(err, &readErr))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = newTestPipeline(t, input, dir).Load(canceled)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCheckOverwrite(t *testing.T) {
	assert.NoError(t, checkOverwrite("", OutputName))
	assert.NoError(t, checkOverwrite("smashtv.sfc", OutputName))
	assert.True(t, errors.Is(checkOverwrite("./"+OutputName, OutputName), ErrOverwriteInput))
}
