package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"shapec/internal/config"
	"shapec/internal/diagfmt"
	"shapec/internal/driver"
	"shapec/internal/source"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] <file.shape|directory>",
	Short: "Compile descriptions into Go type definitions",
	Long: `Build compiles one description file, or every *.shape file under a
directory, into Go source. Configuration is read from the nearest
shapec.toml; flags override it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("out", "o", "", "output directory (default: next to each input)")
	buildCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	buildCmd.Flags().String("progress", "auto", "progress UI for directory builds (auto|on|off)")
	buildCmd.Flags().BoolP("verbose", "v", false, "echo generated source to stdout")
	buildCmd.Flags().String("package", "", "override the generated package name")
	buildCmd.Flags().String("scope", "", "override the namespace scope")
	buildCmd.Flags().Bool("no-cache", false, "bypass the compile cache")
	buildCmd.Flags().Bool("clear-cache", false, "drop the compile cache before building")
}

func runBuild(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	opts, err := buildOptions(cmd, target, st.IsDir())
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}

	if !st.IsDir() {
		fileSet := source.NewFileSetWithBase(filepath.Dir(target))
		id, err := fileSet.Load(target)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", target, err)
		}
		res := driver.Compile(fileSet, id, opts)
		return finishBuild(cmd, fileSet, []driver.Result{res}, outDir, verbose)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	progressFlag, err := cmd.Flags().GetString("progress")
	if err != nil {
		return err
	}
	useTUI := progressFlag == "on" || (progressFlag == "auto" && isTerminal(os.Stdout))

	var (
		fileSet *source.FileSet
		results []driver.Result
	)
	if useTUI {
		files, listErr := driver.ListShapeFiles(target)
		if listErr != nil {
			return listErr
		}
		if len(files) > 0 {
			fileSet, results, err = runBuildWithUI(cmd.Context(), "shapec build", files, target, opts, jobs)
		} else {
			fileSet, results, err = driver.CompileDir(cmd.Context(), target, opts, jobs, nil)
		}
	} else {
		fileSet, results, err = driver.CompileDir(cmd.Context(), target, opts, jobs, nil)
	}
	if err != nil {
		return err
	}
	return finishBuild(cmd, fileSet, results, outDir, verbose)
}

// buildOptions loads the nearest manifest and applies flag overrides.
func buildOptions(cmd *cobra.Command, target string, isDir bool) (driver.Options, error) {
	startDir := target
	if !isDir {
		startDir = filepath.Dir(target)
	}
	cfg, _, err := config.Find(startDir)
	if err != nil {
		return driver.Options{}, err
	}
	if pkg, _ := cmd.Flags().GetString("package"); pkg != "" {
		cfg.Output.Package = pkg
	}
	if scope, _ := cmd.Flags().GetString("scope"); scope != "" {
		cfg.Output.Scope = scope
	}

	opts := driver.Options{
		Config:         cfg,
		MaxDiagnostics: maxDiagnostics(cmd),
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return driver.Options{}, err
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return driver.Options{}, err
	}
	if !noCache || clearCache {
		cache, cacheErr := driver.OpenDiskCache("shapec")
		if cacheErr != nil {
			// the cache is an optimization; build without it
			return opts, nil
		}
		if clearCache {
			if dropErr := cache.DropAll(); dropErr != nil {
				return driver.Options{}, fmt.Errorf("failed to clear cache: %w", dropErr)
			}
		}
		if !noCache {
			opts.Cache = cache
		}
	}
	return opts, nil
}

// finishBuild prints diagnostics, writes the generated files, and reports
// the outcome. Any failed file makes the build fail after all outputs for
// the successful ones are written.
func finishBuild(cmd *cobra.Command, fileSet *source.FileSet, results []driver.Result, outDir string, verbose bool) error {
	diagOpts := diagfmt.Options{Color: useColor(cmd, os.Stderr), Notes: true}

	written, cached, failed := 0, 0, 0
	for _, res := range results {
		if res.Bag != nil && res.Bag.Len() > 0 {
			diagfmt.WriteBag(os.Stderr, fileSet, res.Bag, diagOpts)
		}
		if !res.Ok {
			failed++
			continue
		}
		outPath := outputPath(res.Path, outDir)
		if err := os.WriteFile(outPath, []byte(res.GoSource), 0o644); err != nil { // #nosec G306 -- generated source
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		written++
		if res.CacheHit {
			cached++
		}
		if verbose {
			fmt.Fprintf(os.Stdout, "== %s ==\n%s", outPath, res.GoSource)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	if written == 0 {
		fmt.Fprintln(os.Stdout, "no .shape files found")
		return nil
	}
	if cached > 0 {
		fmt.Fprintf(os.Stdout, "compiled %d files (%d cached)\n", written, cached)
	} else {
		fmt.Fprintf(os.Stdout, "compiled %d files\n", written)
	}
	return nil
}

// outputPath maps a description path to its generated file: coord.shape
// becomes coord.go, next to the input unless an output directory is set.
func outputPath(srcPath, outDir string) string {
	stem := strings.TrimSuffix(filepath.Base(srcPath), driver.ShapeExt)
	if outDir != "" {
		return filepath.Join(outDir, stem+".go")
	}
	return filepath.Join(filepath.Dir(srcPath), stem+".go")
}
