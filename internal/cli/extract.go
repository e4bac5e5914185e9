package cli

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/intl-extract/internal/config"
	"github.com/mvp-joe/intl-extract/internal/discovery"
	"github.com/mvp-joe/intl-extract/internal/extract"
)

var (
	extractRoot           string
	messagesDir           string
	extractSourceLocation bool
	enforceDescriptions   bool
	watchMode             bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract message declarations into JSON catalogs",
	Long: `Extract walks the project for JS/TS source files, extracts react-intl
message declarations, validates them, and writes one JSON catalog per
source file under the messages directory (when configured).`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractRoot, "root", ".", "project root to extract from")
	extractCmd.Flags().StringVar(&messagesDir, "messages-dir", "", "directory to write JSON catalogs to (overrides config)")
	extractCmd.Flags().BoolVar(&extractSourceLocation, "extract-source-location", false, "attach source locations to descriptors")
	extractCmd.Flags().BoolVar(&enforceDescriptions, "enforce-descriptions", false, "require a description on every message")
	extractCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "watch for changes and re-extract")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	rootDir, err := filepath.Abs(extractRoot)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return err
	}

	// Flags override config file values.
	if cmd.Flags().Changed("messages-dir") {
		cfg.Extract.MessagesDir = messagesDir
	}
	if cmd.Flags().Changed("extract-source-location") {
		cfg.Extract.ExtractSourceLocation = extractSourceLocation
	}
	if cmd.Flags().Changed("enforce-descriptions") {
		cfg.Extract.EnforceDescriptions = enforceDescriptions
	}

	runner, err := newRunner(rootDir, cfg)
	if err != nil {
		return err
	}

	if err := runner.runOnce(); err != nil {
		return err
	}

	if watchMode {
		log.Println("Watching for changes (ctrl-c to stop)...")
		return runner.watch()
	}

	if runner.reporter.Errors > 0 {
		return fmt.Errorf("extraction failed for %d file(s)", runner.reporter.Errors)
	}
	return nil
}

// runner ties discovery, extraction, and emission together for one
// project root.
type runner struct {
	rootDir   string
	cfg       *config.Config
	files     *discovery.FileDiscovery
	extractor *extract.Extractor
	emitter   *extract.Emitter
	reporter  *Reporter
}

func newRunner(rootDir string, cfg *config.Config) (*runner, error) {
	files, err := discovery.New(rootDir, cfg.Paths.Source, cfg.Paths.Ignore)
	if err != nil {
		return nil, err
	}

	opts := extract.Options{
		MessagesDir:           cfg.Extract.MessagesDir,
		ExtractSourceLocation: cfg.Extract.ExtractSourceLocation,
		EnforceDescriptions:   cfg.Extract.EnforceDescriptions,
		WorkDir:               rootDir,
	}
	extractor, err := extract.New(opts)
	if err != nil {
		return nil, err
	}

	return &runner{
		rootDir:   rootDir,
		cfg:       cfg,
		files:     files,
		extractor: extractor,
		emitter:   extract.NewEmitter(opts),
		reporter:  NewReporter(),
	}, nil
}

// runOnce discovers and extracts every matching file. Per-file errors are
// reported and that file's output is omitted; extraction continues with
// the next file.
func (r *runner) runOnce() error {
	if !quiet {
		log.Println("Discovering source files...")
	}

	files, err := r.files.Discover()
	if err != nil {
		return err
	}

	if !quiet {
		log.Printf("Extracting messages from %d files\n", len(files))
	}

	bar := newExtractProgress(len(files), quiet)
	messages := 0

	for _, file := range files {
		if n, ok := r.extractOne(file); ok {
			messages += n
		}
		bar.fileDone()
	}
	bar.finish()

	if !quiet {
		fmt.Println()
		r.reporter.Successf("✓ Extracted %d messages from %d files (%d errors, %d warnings)",
			messages, len(files), r.reporter.Errors, r.reporter.Warnings)
	}
	return nil
}

// extractOne extracts a single file, reporting warnings and errors.
// Returns the message count and whether extraction succeeded.
func (r *runner) extractOne(path string) (int, bool) {
	result, err := r.extractor.ExtractFile(path)
	if err != nil {
		r.reporter.Errorf("%v", err)
		return 0, false
	}

	for _, w := range result.Warnings {
		r.reporter.Warnf("%s: %s", w.Ref, w.Message)
	}

	if _, err := r.emitter.Write(result); err != nil {
		r.reporter.Errorf("%v", err)
		return 0, false
	}

	return len(result.Descriptors), true
}

// relPath makes a path relative to the runner root for display and
// event filtering.
func (r *runner) relPath(path string) string {
	rel, err := filepath.Rel(r.rootDir, path)
	if err != nil {
		return path
	}
	return rel
}
