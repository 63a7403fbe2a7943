package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/MacroPower/rpathgen/pkg/log"
	"github.com/MacroPower/rpathgen/pkg/rpath"
	"github.com/MacroPower/rpathgen/pkg/tracing"
	"github.com/MacroPower/rpathgen/pkg/version"
)

const rootExample = `  # Binary in bin/ loading libraries from the sibling lib/ directory
  rpathgen /build/bin /build/lib
  $ORIGIN/../lib

  # Several dependency directories, searched in the given order
  rpathgen /build/bin /build/lib /build/lib2
  $ORIGIN/../lib:$ORIGIN/../lib2

  # Mach-O style token
  rpathgen --token @loader_path /build/bin /build/lib
  @loader_path/../lib`

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrLogHandlerFailed = errors.New("log handler failed")
)

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           name + " <origin> [dependency...]",
		Short:         shortDesc,
		Long:          longDesc,
		Example:       rootExample,
		Args:          originArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.GetVersionString(),
		RunE:          runRoot,
	}

	cmd.PersistentFlags().String("log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log_format", "text", "Set the log format (text, logfmt, json)")

	cmd.Flags().String("token", rpath.DefaultToken, "Token prefixed to every entry")
	cmd.Flags().StringP("output", "o", string(rpath.FormatText), "Output format (text, json, yaml)")
	cmd.Flags().String("workdir", "", "Directory relative paths are resolved against (default is the current directory)")

	if err := cmd.MarkFlagDirname("workdir"); err != nil {
		panic(err)
	}

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		var merr error

		logLevel, err := flags.GetString("log_level")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logFormat, err := flags.GetString("log_format")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		if merr != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
		}

		if err := log.SetDefault(cc.ErrOrStderr(), logLevel, logFormat); err != nil {
			return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
		}

		slog.Debug("ready to go")

		return nil
	}

	return cmd
}

// originArgs requires the origin directory as the first positional argument.
func originArgs(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, rpath.ErrMissingOrigin)
	}

	return nil
}

func runRoot(cc *cobra.Command, args []string) error {
	flags := cc.Flags()

	var merr error

	token, err := flags.GetString("token")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	output, err := flags.GetString("output")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	workDir, err := flags.GetString("workdir")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	if merr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
	}

	format, err := rpath.ParseFormat(output)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	opts := []rpath.ResolverOpts{
		rpath.WithToken(token),
		rpath.WithLogger(slog.Default()),
	}

	if workDir != "" {
		absWorkDir, err := filepath.Abs(workDir)
		if err != nil {
			return fmt.Errorf("%w: failed to get absolute path: %w", ErrInvalidArgument, err)
		}

		opts = append(opts, rpath.WithWorkDir(absWorkDir))
	}

	r, err := rpath.NewResolver(opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	origin, deps := args[0], args[1:]

	slog.Debug("computing rpath",
		slog.String("origin", origin),
		slog.Int("dependencies", len(deps)),
	)

	span := tracing.NewLoggingTracer(slog.Default()).StartSpan("compute")
	span.SetBaggageItem("dependencies", len(deps))

	res, err := r.Compute(origin, deps)
	span.Finish()

	if err != nil {
		return fmt.Errorf("compute rpath: %w", err)
	}

	if err := res.Encode(cc.OutOrStdout(), format); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
