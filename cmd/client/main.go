// sonic-client: stream inputs to a sonic-server child process
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"sonic/host"
	"sonic/nn"
	"sonic/tensor"
	"sonic/utils"
)

var (
	serverCmd = flag.String("server", "sonic-server", "Server command line to spawn")
	inputFile = flag.String("inputs", "", "JSON file holding an array of input vectors")
	samples   = flag.Int("samples", 5, "Random inputs to send when -inputs is empty")
	width     = flag.Int("width", 784, "Width of random inputs")
	seed      = flag.Int64("seed", 42, "Random seed")
	verbose   = flag.Bool("verbose", false, "Verbose output")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose
	log := utils.NewLogger("client")

	inputs, err := loadInputs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load inputs: %v\n", err)
		os.Exit(1)
	}

	args := strings.Fields(*serverCmd)
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "empty -server command")
		os.Exit(1)
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		fmt.Fprintf(os.Stderr, "server stdin: %v\n", err)
		os.Exit(1)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		fmt.Fprintf(os.Stderr, "server stdout: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "start server: %v\n", err)
		os.Exit(1)
	}
	log.Info().Str("server", *serverCmd).Int("inputs", len(inputs)).Msg("server started")

	client := host.NewClient(stdout, stdin)
	failed := 0
	for i, x := range inputs {
		out, err := client.Predict(x)
		var dm *nn.DimensionMismatchError
		switch {
		case errors.As(err, &dm):
			failed++
			fmt.Printf("input %d: rejected: %v\n", i, dm)
			continue
		case err != nil:
			fmt.Fprintf(os.Stderr, "input %d: %v\n", i, err)
			os.Exit(1)
		}
		fmt.Printf("input %d: class %d output %v\n", i, tensor.Argmax(out), out)
	}

	if err := client.Close(); err != nil {
		log.Warn().Err(err).Msg("send done")
	}
	stdin.Close()
	if err := cmd.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "server exited: %v\n", err)
		os.Exit(1)
	}
	log.Info().Int("sent", len(inputs)).Int("rejected", failed).Msg("client done")
}

func loadInputs() ([]tensor.Vector, error) {
	if *inputFile == "" {
		inputs := make([]tensor.Vector, *samples)
		for i := range inputs {
			inputs[i] = utils.RandomInput(*width, *seed+int64(i))
		}
		return inputs, nil
	}
	data, err := os.ReadFile(*inputFile)
	if err != nil {
		return nil, err
	}
	var inputs []tensor.Vector
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("%s: %w", *inputFile, err)
	}
	return inputs, nil
}
