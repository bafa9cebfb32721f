package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheManchineel/ludika-go/config"
	"github.com/TheManchineel/ludika-go/internal/api"
	"github.com/TheManchineel/ludika-go/internal/bootstrap"
	"github.com/TheManchineel/ludika-go/internal/query"
	"github.com/TheManchineel/ludika-go/internal/session"
	"github.com/TheManchineel/ludika-go/internal/transport"
)

// app bundles the wired clients every command runs against. One instance is
// built in the root command's PersistentPreRunE and shared via closure.
type app struct {
	cfg     config.AppConfig
	logger  *slog.Logger
	session *session.Store
	games   *api.Games
	tags    *api.Tags
	reviews *api.Reviews
	users   *api.Users
	catalog *api.Catalog
	eval    query.Evaluator

	format    config.OutputFormat
	queryExpr string
}

// loginHintNavigator is the CLI's answer to "go to the login screen": there is
// no screen, so it prints the command to run instead.
type loginHintNavigator struct{}

func (loginHintNavigator) ToLogin(context.Context) error {
	_, err := fmt.Fprintln(os.Stderr, `Session expired. Run "ludika auth login" to sign in again.`)
	return err
}

func main() {
	a := &app{}

	var outputFlag, queryFlag string

	rootCmd := &cobra.Command{
		Use:   "ludika",
		Short: "Command-line client for the Ludika game catalogue",
		Long: `ludika browses and manages the Ludika videogame catalogue.

Credentials are kept between invocations: log in once with
"ludika auth login" and subsequent commands reuse the stored token.
Expired tokens are dropped automatically and anonymous access is
attempted before giving up.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(outputFlag, queryFlag)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "",
		"Output format: table or json (default from LUDIKA_OUTPUT_FORMAT)")
	rootCmd.PersistentFlags().StringVarP(&queryFlag, "query", "q", "",
		"JMESPath expression applied to JSON output")

	rootCmd.AddCommand(
		authCmd(a),
		gamesCmd(a),
		tagsCmd(a),
		reviewsCmd(a),
		usersCmd(a),
		accountCmd(a),
		catalogCmd(a),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func (a *app) init(outputFlag, queryFlag string) error {
	a.logger = bootstrap.InitLogger()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	tokens, err := bootstrap.NewTokenStore(cfg.Storage)
	if err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}

	sess, err := session.New(session.Options{
		BaseURL:    cfg.BaseURL,
		HTTPClient: httpClient,
		Tokens:     tokens,
		Logger:     a.logger,
	})
	if err != nil {
		return err
	}
	a.session = sess

	gw, err := transport.New(transport.Options{
		BaseURL:    cfg.BaseURL,
		HTTPClient: httpClient,
		Session:    sess,
		Navigator:  loginHintNavigator{},
		Logger:     a.logger,
	})
	if err != nil {
		return err
	}

	a.games = api.NewGames(gw)
	a.tags = api.NewTags(gw)
	a.reviews = api.NewReviews(gw)
	a.users = api.NewUsers(gw)
	a.catalog = api.NewCatalog(a.games, a.tags, a.reviews)
	a.eval = query.NewEvaluator()

	a.format = cfg.Output.Format
	if outputFlag != "" {
		if err := a.format.UnmarshalText([]byte(outputFlag)); err != nil {
			return err
		}
	}

	a.queryExpr = cfg.Output.Query
	if queryFlag != "" {
		a.queryExpr = queryFlag
	}
	if err := a.eval.Validate(a.queryExpr); err != nil {
		return fmt.Errorf("invalid --query expression: %w", err)
	}

	return nil
}
