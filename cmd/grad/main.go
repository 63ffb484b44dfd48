// Package main provides the grad CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/born-ml/grad/internal/serialization"
	"github.com/born-ml/grad/internal/train"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("grad %s\n", version)
	case "train":
		if err := runTrain(os.Stdout, os.Args[2:]); err != nil {
			log.Fatalf("train: %v", err)
		}
	case "inspect":
		if len(os.Args) != 3 {
			log.Fatal("usage: grad inspect <file.safetensors>")
		}
		if err := runInspect(os.Stdout, os.Args[2]); err != nil {
			log.Fatalf("inspect: %v", err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("grad - reverse-mode automatic differentiation")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  train      Train the example network (see train -h)")
	fmt.Println("  inspect    List the tensors in a saved checkpoint")
}

func runTrain(w io.Writer, args []string) error {
	cfg, err := trainConfig(flag.NewFlagSet("train", flag.ExitOnError), args)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Training %s MLP %d -> %v with %s (lr=%v) for %d epochs\n",
		cfg.Mode, cfg.Features(), cfg.Layers, cfg.Optimizer, cfg.LR, cfg.Epochs)

	result, err := train.Run(cfg, w)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nParameters: %d\n", result.Parameters)
	fmt.Fprintf(w, "Final loss: %v\n", result.FinalLoss())
	for i, p := range result.Predictions {
		fmt.Fprintf(w, "  x=%v target=%v prediction=%.4f\n", cfg.Inputs[i], cfg.Targets[i], p)
	}
	if cfg.Save != "" {
		fmt.Fprintf(w, "Saved parameters to %s\n", cfg.Save)
	}
	return nil
}

// trainConfig starts from the defaults, applies the -config file if given,
// then applies the flags set on the command line.
func trainConfig(fs *flag.FlagSet, args []string) (train.Config, error) {
	configPath := fs.String("config", "", "YAML training config (defaults are used when empty)")
	mode := fs.String("mode", "", "value flavour: scalar or tensor")
	epochs := fs.Int("epochs", 0, "number of epochs")
	lr := fs.Float64("lr", 0, "learning rate")
	optimizer := fs.String("optimizer", "", "optimizer: sgd or adam")
	seed := fs.Uint64("seed", 0, "random seed for weight initialization")
	logEvery := fs.Int("log-every", 0, "report the loss every N epochs")
	save := fs.String("save", "", "write the trained parameters to this SafeTensors file")
	if err := fs.Parse(args); err != nil {
		return train.Config{}, err
	}

	cfg := train.DefaultConfig()
	if *configPath != "" {
		loaded, err := train.LoadConfig(*configPath)
		if err != nil {
			return train.Config{}, err
		}
		cfg = loaded
	}

	// Flags override the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "epochs":
			cfg.Epochs = *epochs
		case "lr":
			cfg.LR = float32(*lr)
		case "optimizer":
			cfg.Optimizer = *optimizer
		case "seed":
			cfg.Seed = *seed
		case "log-every":
			cfg.LogEvery = *logEvery
		case "save":
			cfg.Save = *save
		}
	})

	return cfg, nil
}

func runInspect(w io.Writer, path string) error {
	file, err := serialization.ReadSafeTensors(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %d tensors\n", path, len(file.Tensors))
	for _, name := range file.Names() {
		t := file.Tensors[name]
		fmt.Fprintf(w, "  %-12s shape=%v\n", name, []int(t.Shape()))
	}
	if len(file.Metadata) > 0 {
		fmt.Fprintln(w, "Metadata:")
		keys := make([]string, 0, len(file.Metadata))
		for k := range file.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %s\n", k, file.Metadata[k])
		}
	}
	return nil
}
