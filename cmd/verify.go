// cmd/verify.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/graphgen/api/schemas"
	"github.com/xkilldash9x/graphgen/internal/dataset"
	"github.com/xkilldash9x/graphgen/internal/generator"
	"github.com/xkilldash9x/graphgen/internal/observability"
)

func newVerifyCmd() *cobra.Command {
	var dir string

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a generated dataset directory for structural violations",
		Long: `Reads the twelve CSV tables from a directory and checks the properties every
generated dataset has: table sizes derived from the person count, dense ids,
edges that reference existing rows, per-row cardinalities, company sizes and
same-city commutes. When a graphgen.yaml manifest is present, its row counts
are checked against the files too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()
			out := cmd.OutOrStdout()

			ds, err := dataset.Read(dir)
			if err != nil {
				return fmt.Errorf("failed to read dataset: %w", err)
			}

			violations := generator.Verify(ds)
			violations = append(violations, checkManifest(dir, ds)...)

			for _, v := range violations {
				fmt.Fprintln(out, v.String())
			}
			if len(violations) > 0 {
				logger.Error("Dataset failed verification", zap.String("dir", dir), zap.Int("violations", len(violations)))
				return fmt.Errorf("dataset in %s has %d violation(s)", dir, len(violations))
			}

			nodes, edges := 0, 0
			for _, t := range ds.Tables() {
				if t.Kind == schemas.KindNode {
					nodes += len(t.Rows)
				} else {
					edges += len(t.Rows)
				}
			}
			fmt.Fprintf(out, "OK: %d nodes, %d edges, scale %d\n", nodes, edges, len(ds.Persons))
			return nil
		},
	}

	verifyCmd.Flags().StringVar(&dir, "dir", ".", "directory holding the generated CSV files")
	return verifyCmd
}

// checkManifest compares the row counts recorded in an optional manifest with the tables on disk.
func checkManifest(dir string, ds *schemas.Dataset) []generator.Violation {
	m, ok, err := dataset.ReadManifest(dir)
	if err != nil {
		return []generator.Violation{{Table: dataset.ManifestFile, Message: err.Error()}}
	}
	if !ok {
		return nil
	}

	rows := make(map[string]int)
	for _, t := range ds.Tables() {
		rows[t.FileName()] = len(t.Rows)
	}

	var out []generator.Violation
	if m.Scale != len(ds.Persons) {
		out = append(out, generator.Violation{
			Table:   dataset.ManifestFile,
			Message: fmt.Sprintf("scale is %d but %d persons were read", m.Scale, len(ds.Persons)),
		})
	}
	for _, mt := range m.Tables {
		got, known := rows[mt.File]
		switch {
		case !known:
			out = append(out, generator.Violation{Table: dataset.ManifestFile, Message: fmt.Sprintf("lists unknown file %s", mt.File)})
		case got != mt.Rows:
			out = append(out, generator.Violation{Table: mt.Name, Message: fmt.Sprintf("manifest records %d rows, file has %d", mt.Rows, got)})
		}
	}
	return out
}
