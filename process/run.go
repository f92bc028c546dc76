package process

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"osbc/archive"
	"osbc/config"
	"osbc/events"
	"osbc/osufile"
	"osbc/state"
)

// Check parses events in all requested files and reports problems.
func Check(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, "check", checkFile)
}

// Format parses events in all requested files and writes them back out in
// canonical form.
func Format(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, "format", formatFile)
}

type fileFunc func(ctx context.Context, data []byte, path string, log *zap.Logger) error

func run(ctx context.Context, cmd *cli.Command, name string, fn fileFunc) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named(name)

	if cmd.NArg() == 0 {
		return errors.New("no input source has been specified")
	}
	env.Overwrite = cmd.Bool("overwrite")
	env.DumpTree = cmd.Bool("tree")

	if to := cmd.String("to-version"); to != "" {
		v, cerr := strconv.Atoi(to)
		if cerr != nil {
			return fmt.Errorf("malformed file format version %q: %w", to, cerr)
		}
		if cerr := osufile.CheckVersion(v); cerr != nil {
			return cerr
		}
		env.FormatVersion = v
	}

	log.Info("Processing starting", zap.Strings("sources", cmd.Args().Slice()))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	for _, src := range cmd.Args().Slice() {
		src, aerr := filepath.Abs(src)
		if aerr != nil {
			return aerr
		}
		if perr := processPath(ctx, src, log, fn); perr != nil {
			if env.Cfg.Document.OnError == config.FailureModeAbort {
				return perr
			}
			err = multierr.Append(err, perr)
		}
	}
	return err
}

// processPath dispatches a single command line argument: a directory is
// walked recursively, an .osz archive is opened and every beatmap or
// storyboard inside is processed, everything else is treated as a single
// file.
func processPath(ctx context.Context, src string, log *zap.Logger, fn fileFunc) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	if fi.Mode().IsDir() {
		return processDir(ctx, src, log, fn)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}
	if isArchivePath(src) {
		return processArchive(ctx, src, log, fn)
	}
	return processFile(ctx, src, log, fn)
}

func isArchivePath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".osz" || ext == ".zip"
}

func isBeatmapPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".osu" || ext == ".osb"
}

func processDir(ctx context.Context, dir string, log *zap.Logger, fn fileFunc) (err error) {
	env := state.EnvFromContext(ctx)

	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, werr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if werr != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(werr))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		var perr error
		switch {
		case isArchivePath(path):
			count++
			perr = processArchive(ctx, path, log, fn)
		case isBeatmapPath(path):
			count++
			perr = processFile(ctx, path, log, fn)
		default:
			return nil
		}
		if perr != nil {
			if env.Cfg.Document.OnError == config.FailureModeAbort {
				return perr
			}
			log.Error("Unable to process file", zap.String("file", path), zap.Error(perr))
		}
		return nil
	})
	return err
}

func processArchive(ctx context.Context, path string, log *zap.Logger, fn fileFunc) (err error) {
	env := state.EnvFromContext(ctx)

	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	err = archive.Walk(path, []string{".osu", ".osb"}, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		count++

		r, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open %q in archive %q: %w", f.FileHeader.Name, arc, err)
		}
		defer r.Close()

		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("unable to read %q from archive %q: %w", f.FileHeader.Name, arc, err)
		}

		// archive members are checked in place, never rewritten
		perr := checkFile(ctx, data, filepath.Join(arc, filepath.FromSlash(f.FileHeader.Name)), log)
		if perr != nil && env.Cfg.Document.OnError == config.FailureModeAbort {
			return perr
		}
		if perr != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(perr))
		}
		return nil
	})
	return err
}

func processFile(ctx context.Context, path string, log *zap.Logger, fn fileFunc) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return fn(ctx, data, path, log)
}

// loadEvents parses the document structure and its events section.
func loadEvents(ctx context.Context, data []byte, path string, log *zap.Logger) (*Document, events.Events, error) {
	env := state.EnvFromContext(ctx)

	doc, err := ParseDocument(string(bytes.ToValidUTF8(data, nil)))
	if err != nil {
		return nil, nil, fmt.Errorf("unable to parse %q: %w", path, err)
	}

	if env.Rpt != nil {
		if err := env.Rpt.StoreCopy(filepath.Base(path), path); err != nil {
			log.Warn("Unable to store input copy in report", zap.String("file", path), zap.Error(err))
		}
	}

	for _, f := range doc.General() {
		if f.Key == "AudioFilename" || f.Key == "Mode" {
			log.Debug("General", zap.String("file", path), zap.String(f.Key, f.Value))
		}
	}

	body, ok := doc.EventsBody()
	if !ok {
		log.Debug("No events section", zap.String("file", path))
		return doc, nil, nil
	}

	evs, err := events.Parse(body, doc.Version, log)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to parse events in %q: %w", path, err)
	}
	return doc, evs, nil
}

func checkFile(ctx context.Context, data []byte, path string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	doc, evs, err := loadEvents(ctx, data, path, log)
	if err != nil {
		return err
	}

	log.Info("Events parsed", zap.String("file", path), zap.Int("version", doc.Version), zap.Int("events", len(evs)))

	if env.DumpTree {
		tree := evs.DumpTree()
		if env.Rpt != nil {
			env.Rpt.StoreData(filepath.Base(path)+".tree", []byte(tree))
		} else {
			fmt.Print(tree)
		}
	}
	return nil
}

func formatFile(ctx context.Context, data []byte, path string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	doc, evs, err := loadEvents(ctx, data, path, log)
	if err != nil {
		return err
	}

	target := doc.Version
	if env.Cfg.Document.FileFormatVersion != 0 {
		target = env.Cfg.Document.FileFormatVersion
	}
	if env.FormatVersion != 0 {
		target = env.FormatVersion
	}
	if err := osufile.CheckVersion(target); err != nil {
		return fmt.Errorf("cannot format %q: %w", path, err)
	}

	body, err := evs.Render(target)
	if err != nil {
		return fmt.Errorf("unable to serialize events of %q at version %d: %w", path, target, err)
	}
	doc.SetEventsBody(body)
	if err := doc.SetVersion(target); err != nil {
		return err
	}

	out := path
	if !env.Overwrite {
		if out, err = buildOutputPath(path, target, env); err != nil {
			return err
		}
	}

	if err := os.WriteFile(out, []byte(doc.Render()), 0644); err != nil {
		return fmt.Errorf("unable to write %q: %w", out, err)
	}

	if env.Rpt != nil {
		env.Rpt.Store("result-"+filepath.Base(out), out)
	}

	log.Info("Formatted", zap.String("from", path), zap.String("to", out), zap.Int("version", target))
	return nil
}

// outputNameFields is what the output_name_template can refer to.
type outputNameFields struct {
	Dir     string
	Name    string
	Ext     string
	Version int
}

func buildOutputPath(path string, version osufile.Version, env *state.LocalEnv) (string, error) {
	tmpl, err := template.New(string(config.OutputNameTemplateFieldName)).Parse(env.Cfg.Document.OutputNameTemplate)
	if err != nil {
		return "", fmt.Errorf("unable to parse output name template: %w", err)
	}

	ext := filepath.Ext(path)
	fields := outputNameFields{
		Dir:     filepath.Dir(path),
		Name:    strings.TrimSuffix(filepath.Base(path), ext),
		Ext:     ext,
		Version: version,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, fields); err != nil {
		return "", fmt.Errorf("unable to expand output name template: %w", err)
	}

	name := config.CleanFileName(filepath.Base(buf.String()))
	return filepath.Join(fields.Dir, name), nil
}
