// Package check provides the content validation commands.
// Includes: validate, watch
package check

import (
	"github.com/spf13/cobra"
)

// Register adds the validation commands to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(watchCmd)
}
