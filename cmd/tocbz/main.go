package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sunr3d/tocbz/internal/config"
	"github.com/sunr3d/tocbz/internal/entrypoint"
	"github.com/sunr3d/tocbz/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		resize    bool
		maxHeight int
		workers   int
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:   "tocbz [paths...]",
		Short: "Convert directories, ZIP, RAR and 7z archives into CBZ",
		Long: `tocbz packs every given directory or archive into a CBZ next to it
and moves the original into an "old" directory beside it.
With --resize, pages taller than --max-height are downscaled and re-encoded as WebP.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("resize") {
				cfg.Resize = resize
			}
			if flags.Changed("max-height") {
				cfg.MaxHeight = maxHeight
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			_, err = entrypoint.Run(ctx, cfg, log, args)
			return err
		},
	}

	cmd.Flags().BoolVarP(&resize, "resize", "r", false, "downscale tall images and re-encode them as WebP")
	cmd.Flags().IntVar(&maxHeight, "max-height", 2560, "height threshold for --resize")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of sources converted in parallel")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}
