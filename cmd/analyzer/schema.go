package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/konveyor/java-arch-analyzer/internal/graph"
)

var schemaOutputFile string

// SchemaCmd describes the node/edge shapes a downstream consumer of the
// output file will see, via a hand-built OpenAPI document.
func SchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI schema for the emitted node/edge batch shape",
		RunE: func(c *cobra.Command, args []string) error {
			schema, err := graph.DescribeSchema()
			if err != nil {
				return fmt.Errorf("describing schema: %w", err)
			}
			b, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling schema: %w", err)
			}
			if schemaOutputFile == "" {
				fmt.Print(string(b))
				return nil
			}
			return os.WriteFile(schemaOutputFile, b, 0644)
		},
	}
	cmd.Flags().StringVar(&schemaOutputFile, "output-file", "", "write the schema here instead of stdout")
	return cmd
}
