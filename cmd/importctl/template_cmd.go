package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bizdash/import-service/internal/infrastructure/spreadsheet"
)

func newTemplateCmd() *cobra.Command {
	var (
		entity string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the blank import template for an entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := layoutFor(entity)
			if err != nil {
				return err
			}
			if out == "" {
				out = entity + "-template.xlsx"
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := spreadsheet.NewTemplateWriter().WriteTemplate(f, l.sheet, l.columns); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&entity, "entity", "", "Entity to import (contracts, partners)")
	cmd.Flags().StringVar(&out, "out", "", "Output path (default <entity>-template.xlsx)")
	_ = cmd.MarkFlagRequired("entity")
	return cmd
}
