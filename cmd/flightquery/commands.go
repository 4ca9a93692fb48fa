package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"flight-query-service/internal/infrastructure/bootstrap"
	"flight-query-service/internal/infrastructure/config"
	"flight-query-service/pkg/dateresolver"
	"flight-query-service/pkg/logger"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "flightquery",
		Short:         "Resolve travel dates and parse flight queries",
		SilenceUsage:  true,
	}
	root.AddCommand(newResolveCmd(), newSearchCmd())
	return root
}

func newResolveCmd() *cobra.Command {
	var anchor, returnOf string
	cmd := &cobra.Command{
		Use:   "resolve <expression>",
		Short: "Resolve a date expression offline",
		Long: "Resolve a date expression against --anchor (default today).\n" +
			"With --return-of, the departure expression is resolved first and the\n" +
			"argument is resolved relative to it, the way return dates are.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := time.Now()
			if anchor != "" {
				t, err := time.ParseInLocation(dateresolver.Layout, anchor, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --anchor %q: %w", anchor, err)
				}
				base = t
			}

			r := dateresolver.New()
			expr := strings.Join(args, " ")

			if returnOf != "" {
				dep, ok := r.Resolve(returnOf, base)
				if !ok {
					return fmt.Errorf("departure %q could not be resolved", returnOf)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "departure\t%s\t%s\n", dep, dep.Strategy)
				ret, ok := r.ResolveReturn(expr, dep)
				if !ok {
					return fmt.Errorf("%q could not be resolved", expr)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "return\t%s\t%s\n", ret, ret.Strategy)
				return nil
			}

			res, ok := r.Resolve(expr, base)
			if !ok {
				return fmt.Errorf("%q could not be resolved", expr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", res, res.Strategy)
			return nil
		},
	}
	cmd.Flags().StringVar(&anchor, "anchor", "", "anchor date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&returnOf, "return-of", "", "departure expression the argument is relative to")
	return cmd
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Run a query through the extractor and print the response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			// Search logs are for the server only.
			cfg.MongoURI = ""

			log := logger.NewLoggerWithLevel(cfg.LogLevel)
			defer log.Sync()

			ctx := cmd.Context()
			app, err := bootstrap.New(ctx, cfg, nil, log)
			if err != nil {
				return err
			}
			defer app.Close(ctx)

			resp, err := app.Processor.Search(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
}
