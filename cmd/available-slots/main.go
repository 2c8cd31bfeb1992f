package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Parse command line flags
	fs := flag.NewFlagSet("available-slots", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to config file")
	inputPath := fs.String("input", "", "Path to a YAML or JSON slot request (- for stdin)")
	serve := fs.Bool("serve", false, "Start the HTTP API")
	showVersion := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return ExitConfigError
	}

	// Handle version flag
	if *showVersion {
		fmt.Fprintf(stdout, "available-slots %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	if *inputPath == "" && !*serve {
		fmt.Fprintln(stderr, "one of -input or -serve is required")
		fs.Usage()
		return ExitConfigError
	}

	// Load configuration
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return ExitConfigError
	}

	// Logs go to stderr so stdout stays parseable in -input mode
	logger := SetupLogger(cfg, stderr)

	if *inputPath != "" {
		return runInput(*inputPath, cfg, stdin, stdout, stderr)
	}

	logger.Info("starting available-slots",
		"version", Version,
		"config", *configPath,
	)

	server := NewServer(cfg, logger)
	if err := server.Start(context.Background()); err != nil {
		var sErr *ServerError
		if errors.As(err, &sErr) {
			logger.Error("server error",
				"error", sErr.Err,
				"operation", sErr.Op,
			)
			return sErr.ExitCode
		}
		logger.Error("server error", "error", err)
		return ExitHTTPServerError
	}

	return ExitSuccess
}

func runInput(path string, cfg *Config, stdin io.Reader, stdout, stderr io.Writer) int {
	in, err := OpenInput(path, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "input error: %v\n", err)
		return ExitInputError
	}
	defer in.Close()

	req, err := ReadRequest(in)
	if err != nil {
		fmt.Fprintf(stderr, "input error: %v\n", err)
		return ExitInputError
	}

	resp, err := FindSlots(req, cfg.Defaults.Options())
	if err != nil {
		fmt.Fprintf(stderr, "input error: %v\n", err)
		return ExitInputError
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		fmt.Fprintf(stderr, "output error: %v\n", err)
		return ExitInputError
	}

	return ExitSuccess
}
