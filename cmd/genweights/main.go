// sonic-genweights: write a randomly initialised weights file
package main

import (
	"flag"
	"fmt"
	"os"

	"sonic/nn"
	"sonic/utils"
)

var (
	out          = flag.String("out", "weights.json", "Output weights JSON file")
	arch         = flag.String("arch", "784 128 32 10", "Architecture, input width first")
	activation   = flag.String("activation", "abs", "Nonlinearity recorded in the file")
	linearOutput = flag.Bool("linear-output", false, "Record a linear final layer")
	seed         = flag.Int64("seed", 42, "Random seed")
)

func main() {
	flag.Parse()

	widths, err := utils.ParseArchitecture(*arch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse architecture: %v\n", err)
		os.Exit(1)
	}
	cfg := &utils.Config{Architecture: widths, Activation: *activation, LinearOutput: *linearOutput, Seed: *seed}
	if err := utils.ValidateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	var opts []nn.Option
	if cfg.LinearOutput {
		opts = append(opts, nn.WithLinearOutput())
	}
	net, err := utils.RandomNetwork(cfg.Architecture, cfg.Seed, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build network: %v\n", err)
		os.Exit(1)
	}
	if err := utils.SaveWeights(*out, utils.NetworkToWeights(net, cfg.Activation)); err != nil {
		fmt.Fprintf(os.Stderr, "save weights: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s: widths %v, %d parameters\n", *out, net.Widths(), net.Params())
}
