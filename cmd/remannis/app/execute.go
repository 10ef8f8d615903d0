package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matthias-stemmler/rem-treebank-annis/internal/annis"
	"github.com/matthias-stemmler/rem-treebank-annis/internal/archive"
	"github.com/matthias-stemmler/rem-treebank-annis/internal/merge"
	"github.com/matthias-stemmler/rem-treebank-annis/internal/treebank"
	"github.com/matthias-stemmler/rem-treebank-annis/pkg/logging"
)

// Execute runs the remannis CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "remannis INPUT_ANNIS_ZIP INPUT_TTL_DIRECTORY",
		Short:   "Merge the ReM treebank edition into ANNIS corpora",
		Version: a.version,
		Long: `remannis merges the Treebank edition of the Referenzkorpus
Mittelhochdeutsch (ReM) into the ANNIS format.

It reads ANNIS corpora from a zip of GraphML files and treebank data from
a directory of Turtle (.ttl) files, aligns the token streams per document,
merges the treebank's dominance trees into the annotation graphs, and
writes a new zip containing the merged corpora.`,
		Args:              cobra.ExactArgs(2),
		PersistentPreRunE: a.setupCommand,
		RunE:              a.runMerge,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().StringVar(&a.config.LogFormat, "log-format", a.config.LogFormat, "log format: auto, json, console")

	rootCmd.Flags().StringVar(&a.config.Output, "output", "", "path of the output zip (default: like the input, with .out.zip extension)")
	rootCmd.Flags().StringVar(&a.config.Rename, "rename", "", "rename corpora using this pattern; must contain the placeholder %c, e.g. %c_treebank")
	rootCmd.Flags().StringVar(&a.config.Layer, "layer", a.config.Layer, "layer (namespace) of the treebank nodes")
	rootCmd.Flags().StringVar(&a.config.TreeAnno, "tree-anno", a.config.TreeAnno, "name of the treebank annotation")
	rootCmd.Flags().StringVar(&a.config.TreeDisplay, "tree-display", a.config.TreeDisplay, "display name for the ANNIS tree visualizer")
	rootCmd.Flags().StringVar(&a.config.IriAnno, "iri-anno", "", "if set, annotate each merged node with the IRI of its treebank node")

	rootCmd.SetVersionTemplate("remannis {{.Version}}\n")

	return rootCmd
}

// setupCommand is called before the command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	logLevel := mustGetString(cmd, "log-level")

	a.config.UpdateFromFlags(verbose, quiet, logLevel)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// runMerge wires the pipeline and runs it.
func (a *App) runMerge(cmd *cobra.Command, args []string) error {
	inputAnnis, inputTTL := args[0], args[1]

	var renamePattern *merge.RenamePattern
	if a.config.Rename != "" {
		pattern, err := merge.ParseRenamePattern(a.config.Rename)
		if err != nil {
			return err
		}
		renamePattern = pattern
	}

	outputPath := a.config.Output
	if outputPath == "" {
		outputPath = DefaultOutputPath(inputAnnis)
	}

	ctx := logging.WithLogger(cmd.Context(), a.logger)

	storage, err := annis.ImportZip(inputAnnis, a.logger)
	if err != nil {
		return err
	}

	writer, err := archive.NewWriter(outputPath, a.logger)
	if err != nil {
		return err
	}
	defer writer.Close()

	merger := merge.NewMerger(
		storage,
		treebank.NewStorage(inputTTL, a.logger),
		writer,
		merge.Config{
			Layer:       a.config.Layer,
			TreeAnno:    a.config.TreeAnno,
			TreeDisplay: a.config.TreeDisplay,
			IriAnno:     a.config.IriAnno,
			Rename:      renamePattern,
		},
	)

	return merger.Run(ctx)
}

// DefaultOutputPath derives the output path from the input path: the input
// file's stem with a .out.zip extension, next to the input.
func DefaultOutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		return "out.zip"
	}
	return filepath.Join(filepath.Dir(inputPath), stem+".out.zip")
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
