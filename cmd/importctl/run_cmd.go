package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bizdash/import-service/internal/application/importing"
	"github.com/bizdash/import-service/internal/bootstrap"
)

type runOutput struct {
	Preview importing.PreviewReport `json:"preview"`
	Import  *importing.ImportReport `json:"import,omitempty"`
}

func newRunCmd() *cobra.Command {
	var (
		entity string
		file   string
		apply  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Preview an import file; with --apply, import its valid rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !importing.SupportedFile(file) {
				return fmt.Errorf("%w: %s", importing.ErrInvalidImportSource, file)
			}
			if _, err := layoutFor(entity); err != nil {
				return err
			}

			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			app, err := bootstrap.NewApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			importer, err := app.Registry.Get(entity)
			if err != nil {
				return err
			}

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open %s: %w", file, err)
			}
			defer f.Close()

			preview, err := importer.Start(cmd.Context(), filepath.Base(file), f)
			if err != nil {
				return err
			}
			out := runOutput{Preview: preview}

			if !apply {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			report, err := importer.Confirm(cmd.Context(), preview.SessionID)
			if err != nil {
				return err
			}
			out.Import = &report
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&entity, "entity", "", "Entity to import (contracts, partners)")
	cmd.Flags().StringVar(&file, "file", "", "Path to an .xlsx or .csv file (required)")
	cmd.Flags().BoolVar(&apply, "apply", false, "Import valid rows (default dry-run)")
	_ = cmd.MarkFlagRequired("entity")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
