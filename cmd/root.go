package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/undocked/timekeep/internal/auth"
	"github.com/undocked/timekeep/internal/catalog"
	"github.com/undocked/timekeep/internal/config"
	"github.com/undocked/timekeep/internal/sharepoint"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "timekeep",
	Short: "timekeep – team time tracking backed by SharePoint lists",
	Long: `timekeep is a command-line time tracker for teams. All records live in
SharePoint lists reached through the Microsoft Graph API; nothing but the
sign-in tokens is stored locally (~/.timekeep/).`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(adminCmd)
}

// logger builds the process logger, debug-level when --verbose is set.
func logger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// app bundles the signed-in state every data command needs.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	http    *http.Client
	store   *sharepoint.Client
	catalog *catalog.Store
	email   string
	isAdmin bool
}

// newApp loads config, restores the session without prompting, and pulls a
// fresh snapshot of every list. Commands call this once up front.
func newApp(ctx context.Context) (*app, error) {
	log := logger()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	tok, oc, err := auth.SilentSignIn(ctx, cfg.Azure.TenantID, cfg.Azure.ClientID)
	if err != nil {
		return nil, err
	}
	httpClient := auth.HTTPClient(ctx, tok, oc)

	email, err := auth.Me(ctx, httpClient, "")
	if err != nil {
		return nil, err
	}

	store := sharepoint.NewClient(httpClient, "", cfg.SharePoint.SitePath, log)
	cat := catalog.NewStore(store, cfg.SharePoint.Lists, log)
	if err := cat.Load(ctx); err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		log:     log,
		http:    httpClient,
		store:   store,
		catalog: cat,
		email:   email,
		isAdmin: cfg.IsAdmin(email),
	}, nil
}
