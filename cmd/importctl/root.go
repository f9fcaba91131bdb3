package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bizdash/import-service/internal/application/contract"
	"github.com/bizdash/import-service/internal/application/importing"
	"github.com/bizdash/import-service/internal/application/partner"
	"github.com/bizdash/import-service/internal/config"
	"github.com/bizdash/import-service/internal/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "importctl",
		Short:        "Spreadsheet import tools for contracts and partners",
		SilenceUsage: true,
	}
	cmd.AddCommand(newTemplateCmd(), newRunCmd(), newMigrateCmd())
	return cmd
}

// layout is the template shape of an entity; it needs no database.
type layout struct {
	sheet   string
	columns []importing.Column
}

func layoutFor(entity string) (layout, error) {
	switch entity {
	case contract.Entity:
		s := contract.NewSchema()
		return layout{sheet: s.Sheet, columns: s.Columns}, nil
	case partner.Entity:
		s := partner.NewSchema()
		return layout{sheet: s.Sheet, columns: s.Columns}, nil
	default:
		return layout{}, fmt.Errorf("%w: %s", importing.ErrUnknownEntity, entity)
	}
}

func loadRuntime() (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(".env")
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.NewWithOutput(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
