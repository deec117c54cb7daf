package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/config"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/importer"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/logging"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/parser"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/server"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "rtc-import",
		Short:         "Import training score workbooks",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: config.toml next to the executable)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override [log].level")

	root.AddCommand(newRunCmd(opts), newInspectCmd(opts), newDomainsCmd(opts))
	return root
}

func (o *rootOptions) load() (*config.AppConfig, zerolog.Logger, error) {
	var (
		cfg *config.AppConfig
		err error
	)
	if o.configPath != "" {
		cfg, _, err = config.LoadFile(o.configPath)
	} else {
		cfg, _, err = config.LoadConfigWithInfo()
	}
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format), nil
}

func lookupDomain(cfg *config.AppConfig, name string) (domain.Domain, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return domain.Domain{}, err
	}
	d, ok := reg.Lookup(name)
	if !ok {
		return domain.Domain{}, fmt.Errorf("unknown domain %q, one of %v", name, reg.Names())
	}
	return d, nil
}

func newRunCmd(root *rootOptions) *cobra.Command {
	var batchID, importedBy string
	cmd := &cobra.Command{
		Use:   "run <domain> <file.xlsx>",
		Short: "Import a workbook into the configured database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := root.load()
			if err != nil {
				return err
			}
			d, err := lookupDomain(cfg, args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			backend, err := server.OpenBackend(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer backend.Close()

			summary, err := backend.Coordinator.Import(ctx, args[1], d, importerOptions(batchID, importedBy, args[1]))
			if err != nil {
				if se, ok := parser.AsStructural(err); ok {
					return fmt.Errorf("%s: %s", se.Kind, se.Message)
				}
				return err
			}
			return writeJSON(cmd.OutOrStdout(), summary)
		},
	}
	cmd.Flags().StringVar(&batchID, "batch-id", "", "batch id (default <domain>-<timestamp>)")
	cmd.Flags().StringVar(&importedBy, "imported-by", "", "numeric id of the importing user")
	return cmd
}

func importerOptions(batchID, importedBy, path string) importer.ImportOptions {
	return importer.ImportOptions{
		BatchID:    batchID,
		ImporterID: importedBy,
		SourceFile: filepath.Base(path),
	}
}

func newInspectCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <domain> <file.xlsx>",
		Short: "Show how a workbook would be imported without storing anything",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := root.load()
			if err != nil {
				return err
			}
			d, err := lookupDomain(cfg, args[0])
			if err != nil {
				return err
			}
			wb, err := parser.OpenWorkbook(args[1])
			if err != nil {
				return err
			}

			c := importer.NewCoordinator(nil,
				importer.WithLogger(log),
				importer.WithNumberFormat(parser.NumberFormat{DecimalComma: cfg.Import.DecimalComma}),
			)
			preview, err := c.Inspect(wb, d, importerOptions("", "", args[1]))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), preview)
		},
	}
	return cmd
}

func newDomainsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "List import pipelines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := root.load()
			if err != nil {
				return err
			}
			reg, err := cfg.Registry()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSHEET\tTABLE\tREQUIRED")
			for _, name := range reg.Names() {
				d, _ := reg.Lookup(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", d.Name, d.SheetName, d.Table, domain.RoleNames(d.Required))
			}
			return w.Flush()
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
