package main

import (
	"fmt"
	"os"

	"github.com/RacerAlex69/Zeiterfassung/internal/cli"
	"github.com/RacerAlex69/Zeiterfassung/internal/config"
)

func main() {
	// Load configuration: defaults, config file, environment
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Create backend based on environment
	factory := NewBackendFactory(getEnvironment(), cfg)
	svc, err := factory.CreateBackend()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating backend: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	root := cli.NewRootCommand(svc, cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
