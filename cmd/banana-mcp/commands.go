package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/banana-tools-mcp/internal/banana"
	"github.com/ironsheep/banana-tools-mcp/internal/catalog"
	"github.com/ironsheep/banana-tools-mcp/internal/config"
	"github.com/ironsheep/banana-tools-mcp/internal/httpapi"
	"github.com/ironsheep/banana-tools-mcp/internal/imaging"
	"github.com/ironsheep/banana-tools-mcp/internal/server"
)

var (
	cfg config.Config

	editImages []string
	editKey    string
	editPrompt string
	editTitle  string
	editOut    string

	rootCmd = &cobra.Command{
		Use:   "banana-tools-mcp",
		Short: "MCP server for prompt-driven image editing",
		Long: `banana-tools-mcp edits images with a text prompt through a remote
image API. Run without a subcommand it serves MCP over stdin/stdout;
configure it in your MCP client (e.g., Claude Desktop).

Settings are read from BANANA_* environment variables.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runServe,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "banana-tools-mcp %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  Build time: %s\n", BuildTime)
			fmt.Fprintf(cmd.OutOrStdout(), "  Git commit: %s\n", GitCommit)
		},
	}

	editCmd = &cobra.Command{
		Use:   "edit",
		Short: "Edit up to three images once and write the result PNG",
		Args:  cobra.NoArgs,
		RunE:  runEdit,
	}

	promptsCmd = &cobra.Command{
		Use:   "prompts",
		Short: "Print the prompt catalog as JSON",
		Args:  cobra.NoArgs,
		RunE:  runPrompts,
	}
)

func init() {
	editCmd.Flags().StringArrayVarP(&editImages, "image", "i", nil, "input image path (repeat up to 3 times)")
	editCmd.Flags().StringVarP(&editKey, "key", "k", "", "tagged API key (GKEY-... or FKEY-...)")
	editCmd.Flags().StringVarP(&editPrompt, "prompt", "p", "", "edit instruction")
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "catalog title to take the prompt from")
	editCmd.Flags().StringVarP(&editOut, "out", "o", "banana_out.png", "output PNG path")

	rootCmd.AddCommand(versionCmd, editCmd, promptsCmd)
}

// setup loads configuration and installs the stderr logger. Stdout carries
// the MCP protocol, so nothing else may write there while serving.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(); err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	slog.Debug("banana-tools-mcp starting", "version", Version, "built", BuildTime, "commit", GitCommit)
	return nil
}

func newClient() *banana.Client {
	return banana.NewClient(
		banana.WithEndpoint(cfg.Endpoint),
		banana.WithTimeout(cfg.Timeout),
		banana.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		banana.WithLogger(slog.Default()),
	)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat := catalog.Load(cfg.PromptsPath)
	srv := server.New(server.Options{
		Catalog:  cat,
		Editor:   newClient(),
		CacheTTL: cfg.ImageCacheTTL,
	})

	g, gctx := errgroup.WithContext(ctx)
	gctx, cancel := context.WithCancel(gctx)
	defer cancel()

	g.Go(func() error {
		// The MCP client closing stdin ends the session.
		defer cancel()
		return srv.Run(gctx)
	})
	if cfg.HTTPAddr != "" {
		g.Go(func() error {
			return httpapi.Serve(gctx, cfg.HTTPAddr, httpapi.NewRouter(cat))
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	prompt := editPrompt
	if editTitle != "" {
		prompt = catalog.Load(cfg.PromptsPath).Resolve(editTitle, editPrompt)
	}

	images, err := imaging.NewImageCache(cfg.ImageCacheTTL).LoadBatch(editImages)
	if err != nil {
		return err
	}

	res := newClient().Edit(cmd.Context(), banana.EditRequest{
		Key:    editKey,
		Prompt: prompt,
		Images: images,
	})
	if res.Failed() {
		return res.Failure
	}

	written, err := imaging.SavePNG(editOut, res.Image)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), written)
	if res.Text != "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	}
	return nil
}

func runPrompts(cmd *cobra.Command, args []string) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(catalog.Load(cfg.PromptsPath).Entries())
}
