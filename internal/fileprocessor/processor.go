// Package fileprocessor executes a command on a ROM file.
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/smashtvedit/internal/editor"
	"github.com/retroenv/smashtvedit/internal/level"
	"github.com/retroenv/smashtvedit/internal/options"
	"github.com/retroenv/smashtvedit/internal/pipeline"
	"github.com/retroenv/smashtvedit/internal/report"
)

// ProcessFile loads the input file, runs the command and saves the edited
// ROM if the command modifies arenas. Output of reading commands is written
// to out.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, out io.Writer) error {
	p := pipeline.New(logger, opts)

	session, err := p.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	return Execute(ctx, logger, p, session, opts, out)
}

// Execute runs the command of the options on a loaded session.
func Execute(ctx context.Context, logger *log.Logger, p *pipeline.Pipeline, session *pipeline.Session,
	opts options.Program, out io.Writer) error {

	if !opts.Command.Modifies() {
		if opts.Command.Name == options.Info {
			return writeInfo(p, session, out)
		}
		return report.WriteArenas(out, session.Arenas)
	}

	arena, err := edit(session, opts)
	if err != nil {
		return err
	}

	path, err := p.Save(ctx, session)
	if err != nil {
		return fmt.Errorf("saving ROM: %w", err)
	}
	logger.Info("ROM saved", log.String("file", path))

	if arena != nil {
		return report.WriteArena(out, *arena)
	}
	return nil
}

// edit applies a modifying command to the session arenas and returns the
// edited arena, or nil for the plain save command. The arena is only
// replaced if the edit succeeds.
func edit(session *pipeline.Session, opts options.Program) (*level.Arena, error) {
	cmd := opts.Command
	if cmd.Name == options.Save {
		return nil, nil
	}

	target, err := findArena(session.Arenas, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	edited := target.Clone()
	a := &edited
	e := editor.New(!opts.NoCenter)

	switch cmd.Name {
	case options.Set:
		err = e.Set(a, cmd.Args[1], cmd.Args[2])

	case options.Wave:
		var wave int
		wave, err = strconv.Atoi(cmd.Args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid wave number '%s'", cmd.Args[1])
		}
		err = e.SetWave(a, wave, cmd.Args[2], cmd.Args[3])

	case options.AddWave:
		err = editor.AddWave(a)

	case options.DelWave:
		err = editor.RemoveWave(a)

	default:
		return nil, fmt.Errorf("unsupported command '%s'", cmd.Name)
	}

	if err != nil {
		return nil, fmt.Errorf("editing arena %s: %w", a, err)
	}
	*target = edited
	return target, nil
}

func findArena(arenas []level.Arena, ref string) (*level.Arena, error) {
	circuit, arena, err := editor.ParseArenaRef(ref)
	if err != nil {
		return nil, err
	}
	index, err := level.FlatIndex(circuit, arena)
	if err != nil {
		return nil, err
	}
	if index >= len(arenas) {
		return nil, fmt.Errorf("arena %s not loaded", ref)
	}
	return &arenas[index], nil
}

func writeInfo(p *pipeline.Pipeline, session *pipeline.Session, out io.Writer) error {
	header, err := session.Image.Header()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	relocated, err := p.Relocated(session)
	if err != nil {
		return err
	}

	return report.WriteInfo(out, report.Info{
		File:      session.File,
		Size:      session.Image.Len(),
		Header:    header,
		Relocated: relocated,
	})
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("smashtvedit - Super Smash T.V. arena editor",
		log.String("version", buildinfo.Version(version, commit, date)))
}
