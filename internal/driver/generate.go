package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"transplator/internal/buildpipeline"
	"transplator/internal/codegen"
	"transplator/internal/diag"
	"transplator/internal/lexer"
	"transplator/internal/logs"
	"transplator/internal/observ"
	"transplator/internal/project"
	"transplator/internal/source"
)

// GenerateRequest describes one generate run over a project.
type GenerateRequest struct {
	Manifest *project.Manifest
	// OutDir overrides the manifest's output directory when set.
	OutDir string
	// DryRun compiles everything but writes nothing.
	DryRun  bool
	NoCache bool
	// Jobs limits parallel workers; 0 takes the manifest value, then GOMAXPROCS.
	Jobs           int
	MaxDiagnostics int
	// Encoding overrides the manifest's output encoding.
	Encoding *source.Encoding
	Logger   *slog.Logger
	Progress buildpipeline.ProgressSink
	Cache    *DiskCache
}

// TemplateResult is the outcome for a single template.
type TemplateResult struct {
	Template project.Template
	FileID   source.FileID
	Unit     *codegen.Unit // nil when loading or compiling failed
	Bag      *diag.Bag
	OutPath  string
	Written  bool
	Cached   bool
	Elapsed  time.Duration

	skip bool
}

// GenerateResult collects per-template results and the merged diagnostics.
type GenerateResult struct {
	FileSet *source.FileSet
	Items   []TemplateResult
	Bag     *diag.Bag
	Timer   *observ.Timer
}

// HasErrors reports whether any template failed.
func (r *GenerateResult) HasErrors() bool {
	return r != nil && r.Bag.HasErrors()
}

// Generate compiles every template of the project and writes one C# file
// per template. Templates fail independently: a broken template yields
// diagnostics while the rest are still generated. The returned error is
// reserved for failures that stop the whole run (bad manifest, cancellation).
func Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if req.Manifest == nil {
		return nil, errors.New("generate: no manifest")
	}
	logger := req.Logger
	if logger == nil {
		logger = logs.Discard()
	}
	timer := observ.NewTimer()

	enc := req.Encoding
	if enc == nil {
		var err error
		if enc, err = req.Manifest.OutputEncoding(); err != nil {
			return nil, err
		}
	}
	outDir := req.OutDir
	if outDir == "" {
		outDir = req.Manifest.OutDir()
	}

	endDiscover := timer.Track("discover")
	templates, err := req.Manifest.Templates()
	endDiscover(fmt.Sprintf("%d templates", len(templates)))
	if err != nil {
		return nil, err
	}
	logger.Debug("templates discovered", "count", len(templates), "root", req.Manifest.TemplateRoot())

	fs := source.NewFileSetWithBase(req.Manifest.Root)
	items := make([]TemplateResult, len(templates))

	// FileSet не потокобезопасен: загружаем последовательно до запуска воркеров
	endLoad := timer.Track("load")
	for i, tpl := range templates {
		items[i] = TemplateResult{
			Template: tpl,
			Bag:      diag.NewBag(req.MaxDiagnostics),
			OutPath:  filepath.Join(outDir, tpl.OutName),
		}
		buildpipeline.Emit(req.Progress, buildpipeline.Event{File: tpl.Rel, Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusQueued})
		id, loadErr := fs.Load(tpl.Path)
		if loadErr != nil {
			id = fs.AddVirtual(tpl.Path, nil)
			items[i].FileID = id
			reportLoad(diag.BagReporter{Bag: items[i].Bag}, fs.Get(id), loadErr)
			items[i].skip = true
			logger.Warn("template load failed", "template", tpl.Rel, "err", loadErr)
			buildpipeline.Emit(req.Progress, buildpipeline.Event{File: tpl.Rel, Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusError, Err: loadErr})
			continue
		}
		items[i].FileID = id
	}
	endLoad(fmt.Sprintf("%d files", fs.Len()))

	markDuplicates(items, req.Progress, logger)

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = req.Manifest.Config.Generate.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	endGenerate := timer.Track("generate")
	if len(items) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(items)))

		// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
		for i := range items {
			if items[i].skip {
				continue
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				w := worker{req: req, enc: enc, logger: logger}
				w.run(&items[i], fs.Get(items[i].FileID))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			endGenerate("cancelled")
			return nil, err
		}
	}
	endGenerate(fmt.Sprintf("jobs=%d", min(jobs, max(len(items), 1))))

	merged := diag.NewBag(req.MaxDiagnostics)
	written := 0
	for i := range items {
		merged.Merge(items[i].Bag)
		if items[i].Written {
			written++
		}
	}
	merged.Sort()

	logger.Info("generate finished",
		"templates", len(items),
		"written", written,
		"errors", merged.HasErrors(),
		"dry_run", req.DryRun,
	)

	return &GenerateResult{FileSet: fs, Items: items, Bag: merged, Timer: timer}, nil
}

// markDuplicates warns about templates sharing a class name or an output
// file. A later template writing to an already claimed output is skipped.
func markDuplicates(items []TemplateResult, progress buildpipeline.ProgressSink, logger *slog.Logger) {
	names := make(map[string]int, len(items))
	outs := make(map[string]int, len(items))
	for i := range items {
		it := &items[i]
		if it.skip {
			continue
		}
		rep := diag.BagReporter{Bag: it.Bag}
		span := source.Span{File: it.FileID}

		if first, ok := names[it.Template.Name]; ok {
			diag.ReportWarning(rep, diag.TplDuplicateName, span,
				fmt.Sprintf("class %sTemplate is also generated from %s", it.Template.Name, items[first].Template.Rel)).
				WithNote(source.Span{File: items[first].FileID}, "first defined here").
				Emit()
		} else {
			names[it.Template.Name] = i
		}

		key := strings.ToLower(it.OutPath)
		if first, ok := outs[key]; ok {
			diag.ReportWarning(rep, diag.TplDuplicateName, span,
				fmt.Sprintf("output %s is already produced by %s; template skipped", it.Template.OutName, items[first].Template.Rel)).
				WithNote(source.Span{File: items[first].FileID}, "output claimed here").
				Emit()
			it.skip = true
			logger.Warn("duplicate output", "template", it.Template.Rel, "out", it.OutPath)
			buildpipeline.Emit(progress, buildpipeline.Event{File: it.Template.Rel, Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusSkipped})
			continue
		}
		outs[key] = i
	}
}

type worker struct {
	req    GenerateRequest
	enc    *source.Encoding
	logger *slog.Logger
}

func (w worker) run(it *TemplateResult, file *source.File) {
	start := time.Now()
	defer func() { it.Elapsed = time.Since(start) }()
	rel := it.Template.Rel
	// повторы с тем же кодом, span и текстом отбрасываются
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: it.Bag})
	defer func() {
		if n := rep.Suppressed(); n > 0 {
			w.logger.Debug("duplicate diagnostics suppressed", "template", rel, "count", n)
		}
	}()

	w.emit(rel, buildpipeline.StageCompile, buildpipeline.StatusWorking, nil, 0)
	unit, cached, err := w.compile(it.Template.Name, file)
	it.Cached = cached
	if err != nil {
		reportSyntax(rep, file, err)
		w.logger.Debug("template compile failed", "template", rel, "err", err)
		w.emit(rel, buildpipeline.StageCompile, buildpipeline.StatusError, err, time.Since(start))
		return
	}
	it.Unit = unit

	if unit.Empty() {
		diag.ReportInfo(rep, diag.TplNoOutput, source.Span{File: file.ID}, "template produces no output").Emit()
		w.emit(rel, buildpipeline.StageWrite, buildpipeline.StatusSkipped, nil, time.Since(start))
		return
	}
	if w.req.DryRun {
		w.emit(rel, buildpipeline.StageWrite, terminalStatus(cached), nil, time.Since(start))
		return
	}

	w.emit(rel, buildpipeline.StageWrite, buildpipeline.StatusWorking, nil, time.Since(start))
	data, err := unit.Bytes()
	if err == nil {
		it.Written, err = writeIfChanged(it.OutPath, data)
	}
	if err != nil {
		reportWrite(rep, file, it.OutPath, err)
		w.logger.Warn("write failed", "template", rel, "out", it.OutPath, "err", err)
		w.emit(rel, buildpipeline.StageWrite, buildpipeline.StatusError, err, time.Since(start))
		return
	}
	if !it.Written {
		w.emit(rel, buildpipeline.StageWrite, buildpipeline.StatusSkipped, nil, time.Since(start))
		return
	}
	w.logger.Debug("unit written", "template", rel, "out", it.OutPath, "bytes", len(data))
	w.emit(rel, buildpipeline.StageWrite, terminalStatus(cached), nil, time.Since(start))
}

func terminalStatus(cached bool) buildpipeline.Status {
	if cached {
		return buildpipeline.StatusCached
	}
	return buildpipeline.StatusDone
}

func (w worker) emit(file string, stage buildpipeline.Stage, status buildpipeline.Status, err error, elapsed time.Duration) {
	buildpipeline.Emit(w.req.Progress, buildpipeline.Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// compile generates the unit, going through the disk cache when enabled.
// Syntax errors are cached as well and come back as *lexer.SyntaxError.
func (w worker) compile(name string, file *source.File) (*codegen.Unit, bool, error) {
	opts := codegen.Options{Encoding: w.enc}
	cache := w.req.Cache
	if w.req.NoCache {
		cache = nil
	}
	if cache == nil {
		unit, err := codegen.GenerateFile(name, file, opts)
		return unit, false, err
	}

	key := w.cacheKey(name, file)
	var payload DiskPayload
	hit, err := cache.Get(key, &payload)
	if err != nil {
		w.logger.Debug("cache read failed", "key", key.String(), "err", err)
	}
	if hit {
		if payload.Broken {
			return nil, true, lexer.NewSyntaxError(payload.ErrOffset, payload.ErrMsg)
		}
		unitEnc, encErr := source.ParseEncoding(payload.Encoding)
		if encErr == nil {
			return &codegen.Unit{Name: payload.Name, Text: payload.Text, Encoding: unitEnc}, true, nil
		}
	}

	unit, genErr := codegen.GenerateFile(name, file, opts)
	switch {
	case genErr == nil:
		payload = DiskPayload{Name: unit.Name, Text: unit.Text, Encoding: unit.Encoding.Name()}
	default:
		var se *lexer.SyntaxError
		if !errors.As(genErr, &se) {
			return nil, false, genErr
		}
		payload = DiskPayload{Name: name, Broken: true, ErrOffset: se.Offset, ErrMsg: se.Message}
	}
	if err := cache.Put(key, &payload); err != nil {
		w.logger.Debug("cache write failed", "key", key.String(), "err", err)
	}
	return unit, false, genErr
}

func (w worker) cacheKey(name string, file *source.File) project.Digest {
	outEnc := ""
	if w.enc != nil {
		outEnc = w.enc.Name()
	}
	return project.Combine(project.Digest(file.Hash),
		project.DigestString(name),
		project.DigestString(file.Encoding.Name()),
		project.DigestString(outEnc),
		project.DigestString(generatorVersion),
	)
}
