package main

import (
	"github.com/spf13/cobra"

	"github.com/jihwankim/pcfuzz/pkg/fuzz/fuzzer"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/target"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/targets/identity"
)

var identityCmd = &cobra.Command{
	Use:   "identity",
	Args:  cobra.NoArgs,
	Short: "Fuzz the identity precompile (address 0x04)",
	Long: `Fuzzes the identity precompile on both implementations. Mode 0 counts
any error reply as a failure; mode 1 compares each implementation's output
byte-for-byte against the identity control function.

Supported modes: 0 (valid), 1 (valid vs control).`,
	RunE: runIdentity,
}

func init() {
	addCommonFlags(identityCmd)
}

func runIdentity(cmd *cobra.Command, _ []string) error {
	flags, err := parseCommonFlags(cmd)
	if err != nil {
		return err
	}

	f := fuzzer.New(
		func() target.Target { return identity.New() },
		fuzzer.Config{VerboseErrors: flags.verboseErrors, Threads: flags.threads},
		referenceFactory,
		variantFactory,
	)

	return runMode(cmd, f, flags, []int{0, 1})
}
