package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jihwankim/pcfuzz/pkg/fuzz/driver"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/fuzzer"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/transport"
)

// referenceBinary and variantBinary are the two helper binary paths spec.md
// §6 names, spawned once per worker.
const (
	referenceBinary = "./call_celo/call_celo"
	variantBinary   = "./call_geth/call_geth"
)

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("verbose-errors", "v", false, "print per-failure detail lines to stdout")
	cmd.Flags().IntP("threads", "t", 4, "worker count")
	cmd.Flags().IntP("mode", "m", 0, "0 = valid, 1 = valid vs control, 2 = mixed, 3 = invalid")
	cmd.Flags().String("metrics-addr", "", "optional address to expose Prometheus metrics on (e.g. :9090)")
}

type commonFlags struct {
	verboseErrors bool
	threads       int
	mode          int
	metricsAddr   string
}

func parseCommonFlags(cmd *cobra.Command) (commonFlags, error) {
	var f commonFlags
	var err error
	if f.verboseErrors, err = cmd.Flags().GetBool("verbose-errors"); err != nil {
		return f, err
	}
	if f.threads, err = cmd.Flags().GetInt("threads"); err != nil {
		return f, err
	}
	if f.mode, err = cmd.Flags().GetInt("mode"); err != nil {
		return f, err
	}
	if f.metricsAddr, err = cmd.Flags().GetString("metrics-addr"); err != nil {
		return f, err
	}
	return f, nil
}

// referenceFactory and variantFactory spawn one helper binary process per
// worker, named by worker index purely for log diagnostics.
func referenceFactory(workerIndex int) (*transport.Caller, error) {
	return transport.New(fmt.Sprintf("reference[%d]", workerIndex), referenceBinary)
}

func variantFactory(workerIndex int) (*transport.Caller, error) {
	return transport.New(fmt.Sprintf("variant[%d]", workerIndex), variantBinary)
}

// runMode dispatches to the fuzzer method the requested mode selects, among
// the modes supportedModes names. Returns an error without running anything
// for a mode the target doesn't support, per spec.md §6.
func runMode(cmd *cobra.Command, f *fuzzer.Fuzzer, flags commonFlags, supportedModes []int) error {
	supported := false
	for _, m := range supportedModes {
		if m == flags.mode {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("mode %d is not supported by this target (supported: %v)", flags.mode, supportedModes)
	}

	if flags.metricsAddr != "" {
		f.Driver.Metrics = driver.NewMetrics(flags.metricsAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch flags.mode {
	case 0:
		f.Run(ctx)
		return nil
	case 1:
		return f.RunAgainstControl(ctx)
	case 2:
		return f.RunMixed(ctx)
	case 3:
		return f.RunInvalid(ctx)
	default:
		return fmt.Errorf("unreachable mode %d", flags.mode)
	}
}
