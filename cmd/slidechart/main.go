// Package main provides the CLI entry point for slidechart.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/slidechart-go/internal/config"
	"github.com/ukaji3/slidechart-go/internal/logger"
	"github.com/ukaji3/slidechart-go/pkg/slidechart"
	"github.com/ukaji3/slidechart-go/pkg/slidechart/models"
	"github.com/ukaji3/slidechart-go/pkg/slidechart/output"
	"gopkg.in/yaml.v3"
)

var (
	configPath string
	logLevel   string
	outputPath string
	pretty     bool

	scriptPath    string
	elementID     string
	includeTables bool
	xlsxPath      string

	cfg *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "slidechart",
		Short: "Keep slide chart data consistent",
		Long: `slidechart normalizes chart data for slide elements, applies edit
scripts to a chart draft, and moves chart data to and from xlsx workbooks.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, disabled")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	normalizeCmd := &cobra.Command{
		Use:   "normalize [input]",
		Short: "Normalize partial chart data (JSON or YAML) into a canonical record",
		Args:  cobra.ExactArgs(1),
		RunE:  runNormalize,
	}

	sanitizeCmd := &cobra.Command{
		Use:   "sanitize [input]",
		Short: "Re-enforce chart invariants on a stored record",
		Args:  cobra.ExactArgs(1),
		RunE:  runSanitize,
	}

	editCmd := &cobra.Command{
		Use:   "edit [input]",
		Short: "Apply an edit script to a chart and print the resulting record",
		Args:  cobra.ExactArgs(1),
		RunE:  runEdit,
	}
	editCmd.Flags().StringVar(&scriptPath, "script", "", "Edit script (YAML or JSON list of steps)")
	editCmd.Flags().StringVar(&elementID, "element", "chart-1", "Element id reported in settings updates")
	_ = editCmd.MarkFlagRequired("script")

	importCmd := &cobra.Command{
		Use:   "import [input.xlsx]",
		Short: "Import the charts of an xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
	importCmd.Flags().BoolVar(&includeTables, "tables", false, "Read data tables on sheets without charts")

	exportCmd := &cobra.Command{
		Use:   "export [input]",
		Short: "Write a chart to an xlsx workbook with its data table",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Workbook output path")
	_ = exportCmd.MarkFlagRequired("xlsx")

	rootCmd.AddCommand(normalizeCmd, sanitizeCmd, editCmd, importCmd, exportCmd)
	return rootCmd
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg = config.Default()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	log := logger.NewLogger(cfg.LoggerConfig(logLevel))
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))
	return nil
}

func runNormalize(cmd *cobra.Command, args []string) error {
	log := logger.FromContext(cmd.Context())
	partial, err := readPartial(args[0])
	if err != nil {
		return err
	}
	record := slidechart.Normalize(partial, cfg.Palette())
	log.Info("chart normalized", "type", record.Type,
		"categories", len(record.Labels), "series", len(record.Datasets))
	return writeJSON(record)
}

func runSanitize(_ *cobra.Command, args []string) error {
	var record models.ChartRecord
	if err := readDocument(args[0], &record); err != nil {
		return err
	}
	return writeJSON(slidechart.Sanitize(record, cfg.Palette()))
}

func runEdit(cmd *cobra.Command, args []string) error {
	log := logger.FromContext(cmd.Context())
	partial, err := readPartial(args[0])
	if err != nil {
		return err
	}

	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read edit script: %w", err)
	}
	mutations, err := slidechart.ParseScript(script)
	if err != nil {
		return err
	}

	sink := slidechart.NewMemorySink()
	editor := slidechart.NewEditor(sink,
		slidechart.WithPalette(cfg.Palette()),
		slidechart.WithLogger(log))
	record := editor.Open(elementID, partial)

	for i, m := range mutations {
		next, ok := editor.Apply(m)
		if !ok {
			log.Warn("edit step skipped", "step", i+1, "op", m.Op)
			continue
		}
		record = next
	}
	log.Info("edit script applied", "element", elementID,
		"steps", len(mutations), "updates", sink.Count())

	return writeJSON(record)
}

func runImport(cmd *cobra.Command, args []string) error {
	log := logger.FromContext(cmd.Context())
	opts := cfg.ImportOptions(log)
	if cmd.Flags().Changed("tables") {
		opts.IncludeTables = &includeTables
	}

	wb, err := slidechart.Import(args[0], opts)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	log.Info("workbook imported", "book", wb.BookName, "charts", len(wb.Charts))
	return writeJSON(wb)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.FromContext(cmd.Context())
	partial, err := readPartial(args[0])
	if err != nil {
		return err
	}
	record := slidechart.Normalize(partial, cfg.Palette())

	if err := output.SaveXLSX(xlsxPath, record, cfg.XLSXOptions()); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	log.Info("workbook written", "path", xlsxPath, "type", record.Type)

	if outputPath != "" {
		return writeJSON(record)
	}
	return nil
}

// readPartial reads a chart document; "-" reads stdin.
func readPartial(path string) (*models.PartialChart, error) {
	var partial models.PartialChart
	if err := readDocument(path, &partial); err != nil {
		return nil, err
	}
	return &partial, nil
}

// readDocument decodes a JSON or YAML document into v. YAML is converted to
// JSON first so that v's json tags apply to both.
func readDocument(path string, v any) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if !output.IsJSON(data) {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse input: %w", err)
		}
		if data, err = output.ToJSON(doc, false); err != nil {
			return fmt.Errorf("failed to convert input: %w", err)
		}
	}
	if err := output.FromJSON(data, v); err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}
	return nil
}

func writeJSON(v any) error {
	jsonData, err := output.ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(jsonData))
	return nil
}
