// Command pcfuzz is the differential fuzzer entry point: one subcommand per
// precompile target (identity, sha256, cip20), each hard-coding the modes
// its target supports per spec.md §6.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pcfuzz",
	Short: "Differential fuzzer for stateless precompiled contracts",
	Long: `pcfuzz drives two precompile implementations under test over a
framed stdin/stdout protocol and compares each output bit-for-bit against
an in-process control computation.`,
}

func init() {
	// No root-level persistent flags: each subcommand's own
	// --verbose-errors/-v (spec.md §6) is the only verbosity knob. A
	// root "-v" would collide with it once cobra merges persistent flags
	// into the subcommand's flag set, panicking on the duplicate "v"
	// shorthand.
	rootCmd.AddCommand(identityCmd)
	rootCmd.AddCommand(sha256Cmd)
	rootCmd.AddCommand(cip20Cmd)
}

// Commands are defined in separate files:
// - identityCmd in identity.go
// - sha256Cmd in sha256.go
// - cip20Cmd in cip20.go

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
