// sonic-infer: run one input through a saved or randomly initialised network
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"sonic/nn"
	"sonic/tensor"
	"sonic/utils"
)

var (
	weightsFile  = flag.String("weights", "", "Weights JSON file (empty: random demo network)")
	inputFile    = flag.String("input", "", "Input JSON file: a flat array or a 2-D table")
	arch         = flag.String("arch", "784 128 32 10", "Demo architecture, input width first")
	activation   = flag.String("activation", "", "Nonlinearity: abs, relu, tanh, sigmoid, identity")
	kernel       = flag.String("kernel", "reference", "Layer kernel: reference, blas, auto")
	linearOutput = flag.Bool("linear-output", false, "Skip the nonlinearity on the last layer")
	record       = flag.Bool("record", false, "Print every intermediate stage")
	seed         = flag.Int64("seed", 42, "Random seed for demo weights and input")
	topK         = flag.Int("topk", 3, "Top predictions to show")
	verbose      = flag.Bool("verbose", true, "Verbose output")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose
	log := utils.NewLogger("infer")

	archWidths, err := utils.ParseArchitecture(*arch)
	if err != nil {
		fatal("parse architecture: %v", err)
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
		fatal("invalid config: %v", err)
	}
	opts, err := cfg.NetworkOptions()
	if err != nil {
		fatal("%v", err)
	}

	stats := &utils.TimingStats{}
	begin := time.Now()

	net, err := buildNetwork(cfg, opts, stats)
	if err != nil {
		fatal("build network: %v", err)
	}
	log.Info().Ints("widths", net.Widths()).Int("params", net.Params()).Str("kernel", net.KernelName()).Msg("network ready")

	input, err := loadInput(*inputFile, net.InputWidth(), cfg.Seed)
	if err != nil {
		fatal("load input: %v", err)
	}
	log.Info().Int("width", len(input)).Msg("input ready")

	start := time.Now()
	var output tensor.Vector
	if *record {
		var rec *nn.Record
		rec, err = net.Record(input)
		if err == nil {
			output = rec.Output()
			printRecord(rec)
		}
	} else {
		output, err = net.Predict(input)
	}
	stats.Observe(time.Since(start), err)
	if err != nil {
		fatal("predict: %v", err)
	}
	stats.TotalTime = time.Since(begin)

	showResults(output, *topK)
	utils.PrintTimingStats(stats)
}

func buildNetwork(cfg *utils.Config, opts []nn.Option, stats *utils.TimingStats) (*nn.Network, error) {
	if cfg.WeightsPath == "" {
		start := time.Now()
		net, err := utils.RandomNetwork(cfg.Architecture, cfg.Seed, opts...)
		stats.BuildTime = time.Since(start)
		return net, err
	}

	start := time.Now()
	weights, err := utils.LoadWeights(cfg.WeightsPath)
	stats.LoadTime = time.Since(start)
	if err != nil {
		return nil, err
	}
	start = time.Now()
	net, err := utils.BuildNetwork(weights, opts...)
	stats.BuildTime = time.Since(start)
	return net, err
}

// loadInput reads a flat vector or a 2-D table from path. Without a path it
// draws a random input of the given width.
func loadInput(path string, width int, seed int64) (tensor.Vector, error) {
	if path == "" {
		return utils.RandomInput(width, seed), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var flat tensor.Vector
	if err := json.Unmarshal(data, &flat); err == nil {
		return flat, nil
	}
	var table tensor.Matrix
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("%s: want a JSON array or array of arrays: %w", path, err)
	}
	return tensor.Flatten(table), nil
}

func printRecord(rec *nn.Record) {
	for k, stage := range rec.Stages {
		label := fmt.Sprintf("layer %d", k-1)
		if k == 0 {
			label = "input"
		}
		fmt.Printf("%-8s width=%-4d argmax=%d\n", label, len(stage), tensor.Argmax(stage))
	}
}

func showResults(output tensor.Vector, k int) {
	preds := utils.TopK(output, k)
	fmt.Printf("\nTop %d predictions:\n", len(preds))
	for i, p := range preds {
		fmt.Printf("  %d. Class %d: score %.4f, p=%.4f\n", i+1, p.Class, p.Score, p.Probability)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
