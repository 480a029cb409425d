package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kisanmitra/formbridge/internal/core/domain"
)

var hashCmd = &cobra.Command{
	Use:   "hash <schema.json>",
	Short: "Compute the schema fingerprint of a doctype definition",
	Long: `Reads a doctype definition from a JSON file (the "data" object the
upstream DocType endpoint returns) and prints its schema fingerprint.
Useful for checking what fingerprint a deployed client should be
holding for a given form.`,
	Args: cobra.ExactArgs(1),
	RunE: runHash,
}

func init() {
	rootCmd.AddCommand(hashCmd)
}

func runHash(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	var schema domain.DoctypeSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	cmd.Println(domain.Fingerprint(schema))
	return nil
}
