// Command aether renders a folder or .zip archive of frames into a webm,
// mp4 or gif with ffmpeg.
//
// It reads the render request from a JSON file (--config) or inline flags,
// validates it, and runs the render pipeline, a single-frame preview, or
// the system check (--check).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/aether-renderer/internal/check"
	"github.com/backmassage/aether-renderer/internal/config"
	"github.com/backmassage/aether-renderer/internal/display"
	"github.com/backmassage/aether-renderer/internal/logging"
	"github.com/backmassage/aether-renderer/internal/pipeline"
)

// version is injected at build time via -ldflags.
var version = "0.4.0"

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// errUsage marks a command line that is missing required arguments.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	code := exitOK
	root := newRootCmd(stdout, stderr, &code)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if errors.Is(err, errUsage) {
			return exitUsage
		}
		// Flag parse errors from cobra itself.
		fmt.Fprintf(stderr, "aether: %v\n", err)
		_ = root.Usage()
		return exitUsage
	}
	return code
}

func newRootCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	var flags *config.Flags

	cmd := &cobra.Command{
		Use:   "aether [--config FILE | --input PATH --output FILE] [flags]",
		Short: "Render a frame sequence to webm, mp4 or gif with ffmpeg",
		Long: "Aether Renderer turns a folder or .zip archive of still frames into an\n" +
			"animated webm (alpha), mp4 or gif, with optional fade-in and fade-out.",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = execute(cmd, flags, args, stdout, stderr)
			if *code == exitUsage {
				return errUsage
			}
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	flags = config.BindFlags(cmd.Flags())
	return cmd
}

func execute(cmd *cobra.Command, flags *config.Flags, args []string, stdout, stderr io.Writer) int {
	fs := cmd.Flags()

	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr.
	cfg := config.DefaultConfig()
	switch {
	case flags.ConfigPath != "":
		loaded, err := config.LoadFile(flags.ConfigPath)
		if err != nil {
			fmt.Fprintf(stderr, "aether: %v\n", err)
			return exitFailure
		}
		cfg = loaded
	case fs.Changed("check"):
	case !flags.HasInline(fs):
		fmt.Fprintln(stderr, "aether: either --config or both --input and --output are required")
		_ = cmd.Usage()
		return exitUsage
	}

	if err := flags.Apply(fs, &cfg, args); err != nil {
		fmt.Fprintf(stderr, "aether: %v\n", err)
		_ = cmd.Usage()
		return exitUsage
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "aether: %v\n", err)
		return exitFailure
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(stderr, "aether: %v\n", err)
		return exitFailure
	}
	defer log.Close()

	// Phase 2: Logger available. All output goes through log from here on.
	if cfg.Verbose {
		display.PrintBanner(stdout, version)
		log.Debug(true, "Config: %s", cfg.String())
	}

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return exitFailure
		}
		return exitOK
	}

	// Phase 3: Render. There is no mid-render cancellation; a hung
	// encoder blocks here until it exits.
	rep, err := pipeline.Render(context.Background(), &cfg, log)
	if err != nil {
		log.Error("%v", err)
		return exitFailure
	}
	fmt.Fprint(stdout, rep.Summary())
	return exitOK
}
