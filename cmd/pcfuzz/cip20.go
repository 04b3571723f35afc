package main

import (
	"github.com/spf13/cobra"

	"github.com/jihwankim/pcfuzz/pkg/fuzz/fuzzer"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/target"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/targets/cip20"
)

var cip20Cmd = &cobra.Command{
	Use:   "cip20",
	Args:  cobra.NoArgs,
	Short: "Fuzz the CIP-20 multiplexed hashing precompile (address 0xf3)",
	Long: `Fuzzes the CIP-20 precompile: a selector byte multiplexing
SHA3-256, SHA3-512, Keccak-512, Blake2s, and Blake2Xs, compared against an
in-process control computation (there is no second child-process
implementation for CIP-20).

Supported modes: 0 (valid), 1 (valid vs control), 2 (mixed), 3 (invalid).`,
	RunE: runCip20,
}

func init() {
	addCommonFlags(cip20Cmd)
}

func runCip20(cmd *cobra.Command, _ []string) error {
	flags, err := parseCommonFlags(cmd)
	if err != nil {
		return err
	}

	// CIP-20 has no reference-binary side; only the variant is a real
	// child process.
	f := fuzzer.New(
		func() target.Target { return cip20.New() },
		fuzzer.Config{VerboseErrors: flags.verboseErrors, Threads: flags.threads},
		nil,
		variantFactory,
	)

	return runMode(cmd, f, flags, []int{0, 1, 2, 3})
}
