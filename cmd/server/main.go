// sonic-server: answer predict requests on stdin/stdout
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/klauspost/cpuid/v2"

	"sonic/host"
	"sonic/nn"
	"sonic/utils"
)

var (
	weightsFile  = flag.String("weights", "", "Weights JSON file (empty: random demo network)")
	arch         = flag.String("arch", "784 128 32 10", "Demo architecture, input width first")
	activation   = flag.String("activation", "", "Nonlinearity: abs, relu, tanh, sigmoid, identity")
	kernel       = flag.String("kernel", "auto", "Layer kernel: reference, blas, auto")
	linearOutput = flag.Bool("linear-output", false, "Skip the nonlinearity on the last layer")
	seed         = flag.Int64("seed", 42, "Random seed for demo weights")
	verbose      = flag.Bool("verbose", false, "Verbose output")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose
	// stdout carries the protocol
	utils.Output = os.Stderr
	log := utils.NewLogger("server")

	log.Info().
		Str("cpu", cpuid.CPU.BrandName).
		Int("cores", cpuid.CPU.PhysicalCores).
		Bool("simd", nn.SIMDAvailable()).
		Msg("server starting")

	archWidths, err := utils.ParseArchitecture(*arch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse architecture: %v\n", err)
		os.Exit(1)
	}
	cfg := &utils.Config{
		Architecture: archWidths,
		WeightsPath:  *weightsFile,
		Activation:   *activation,
		Kernel:       *kernel,
		LinearOutput: *linearOutput,
		Seed:         *seed,
	}
	if err := utils.ValidateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}
	opts, err := cfg.NetworkOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	stats := &utils.TimingStats{}
	begin := time.Now()

	var net *nn.Network
	if cfg.WeightsPath != "" {
		net, err = utils.LoadNetwork(cfg.WeightsPath, opts...)
	} else {
		net, err = utils.RandomNetwork(cfg.Architecture, cfg.Seed, opts...)
	}
	stats.BuildTime = time.Since(begin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build network: %v\n", err)
		os.Exit(1)
	}
	log.Info().Ints("widths", net.Widths()).Str("kernel", net.KernelName()).Msg("model ready")

	srv := &host.Server{
		Network:  net,
		Protocol: host.NewProtocol(os.Stdin, os.Stdout),
		Logger:   log,
		Stats:    stats,
	}
	log.Info().Msg("waiting for client")
	if err := srv.Serve(); err != nil {
		log.Error().Err(err).Msg("serve failed")
		os.Exit(1)
	}

	stats.TotalTime = time.Since(begin)
	log.Info().Int("predictions", stats.Predictions).Int("failures", stats.Failures).Msg("server done")
	utils.PrintTimingStats(stats)
}
