package main

import (
	"github.com/spf13/cobra"

	"github.com/jihwankim/pcfuzz/pkg/fuzz/fuzzer"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/target"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/targets/sha256"
)

var sha256Cmd = &cobra.Command{
	Use:   "sha256",
	Args:  cobra.NoArgs,
	Short: "Fuzz the SHA-256 precompile (address 0x02)",
	Long: `Fuzzes the SHA-256 precompile on both implementations. Mode 0 counts
any error reply as a failure; mode 1 compares each implementation's output
byte-for-byte against the standard library's SHA-256.

Supported modes: 0 (valid), 1 (valid vs control).`,
	RunE: runSha256,
}

func init() {
	addCommonFlags(sha256Cmd)
}

func runSha256(cmd *cobra.Command, _ []string) error {
	flags, err := parseCommonFlags(cmd)
	if err != nil {
		return err
	}

	f := fuzzer.New(
		func() target.Target { return sha256.New() },
		fuzzer.Config{VerboseErrors: flags.verboseErrors, Threads: flags.threads},
		referenceFactory,
		variantFactory,
	)

	return runMode(cmd, f, flags, []int{0, 1})
}
