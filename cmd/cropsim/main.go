package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var catalogPath string

	root := &cobra.Command{
		Use:          "cropsim",
		Short:        "Crop field growth simulator",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "product catalog YAML (default: built-in)")

	root.AddCommand(fieldCmd())
	root.AddCommand(timelineCmd(&catalogPath))
	root.AddCommand(simulateCmd(&catalogPath))
	root.AddCommand(validateCmd())
	root.AddCommand(serveCmd(&catalogPath))
	return root
}

func fieldCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "field [project-path]",
		Short: "Scale, triangulate and plant the field outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runField(cmd.OutOrStdout(), args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full layout as JSON")
	return cmd
}

func timelineCmd(catalogPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "timeline [project-path]",
		Short: "Print the daily weather, growth factor and stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimeline(cmd.Context(), cmd.OutOrStdout(), args[0], *catalogPath, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the days as JSON")
	return cmd
}

func simulateCmd(catalogPath *string) *cobra.Command {
	var (
		speed  float64
		days   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "simulate [project-path]",
		Short: "Play the season headless and print the final report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context(), cmd.OutOrStdout(), args[0], *catalogPath, speed, days, asJSON)
		},
	}
	cmd.Flags().Float64Var(&speed, "speed", 0, "playback speed multiplier (0 = playback.speed from farm.yaml)")
	cmd.Flags().IntVar(&days, "days", 0, "stop after this many days (0 = whole season)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a farm spec without running the simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0])
		},
	}
}

func serveCmd(catalogPath *string) *cobra.Command {
	var (
		port    int
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local dev server with the playback API and day stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var project string
			if len(args) == 1 {
				project = args[0]
			}
			return runServe(cmd.Context(), serveOptions{
				project: project,
				port:    port,
				envFile: envFile,
				catalog: *catalogPath,
			})
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (default: CROPSIM_PORT or 3000)")
	cmd.Flags().StringVar(&envFile, "env", "", "dotenv file (default: .env)")
	return cmd
}
