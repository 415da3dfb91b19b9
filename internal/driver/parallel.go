package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"shapec/internal/diag"
	"shapec/internal/source"
)

// ShapeExt is the description file extension.
const ShapeExt = ".shape"

type EventKind uint8

const (
	EventStart EventKind = iota
	EventDone
)

// Event reports per-file progress of a directory build.
type Event struct {
	Kind     EventKind
	Path     string
	Ok       bool
	CacheHit bool
}

// ListShapeFiles returns every *.shape file under dir, sorted for a
// deterministic build order.
func ListShapeFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ShapeExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CompileDir compiles every description under dir, independent files in
// parallel. Sibling failures never affect each other; per-file diagnostics
// land in each Result's bag. The events channel, when non-nil, receives
// start/done notifications and must be drained by the caller.
func CompileDir(ctx context.Context, dir string, opts Options, jobs int, events chan<- Event) (*source.FileSet, []Result, error) {
	files, err := ListShapeFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// the FileSet is not safe for concurrent mutation, so load up front
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if events != nil {
				events <- Event{Kind: EventStart, Path: path}
			}

			if loadErr, failed := loadErrors[path]; failed {
				maxDiag := opts.MaxDiagnostics
				if maxDiag <= 0 {
					maxDiag = 64
				}
				bag := diag.NewBag(maxDiag)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFile,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = Result{Path: path, Bag: bag}
			} else {
				results[i] = Compile(fileSet, fileIDs[path], opts)
			}

			if events != nil {
				events <- Event{
					Kind:     EventDone,
					Path:     path,
					Ok:       results[i].Ok,
					CacheHit: results[i].CacheHit,
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
