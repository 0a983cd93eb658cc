package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"
	"google.golang.org/api/fitness/v1"
	"google.golang.org/api/option"

	"github.com/sstent/gfitweight/internal/auth"
	"github.com/sstent/gfitweight/internal/config"
	"github.com/sstent/gfitweight/internal/fit"
	"github.com/sstent/gfitweight/internal/weight"
)

// Scope grants write access to body measurements
const Scope = fitness.FitnessBodyWriteScope

var errInput = errors.New("invalid weight csv")

// app carries what the commands need from the outside world
type app struct {
	v      *viper.Viper
	in     io.Reader
	logger *log.Logger

	// overrides used by tests
	oauthEndpoint *oauth2.Endpoint
	apiOptions    []option.ClientOption
}

func newApp() *app {
	return &app{
		v:      viper.New(),
		in:     os.Stdin,
		logger: log.New(os.Stderr, "gfitweight: ", log.LstdFlags),
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gfitweight",
		Short: "gfitweight syncs smart-scale weight measurements with Google Fit",
		Long: `gfitweight is a CLI application that:
1. Authorizes with Google Fit (OAuth2, body write scope)
2. Finds or registers the weight data source
3. Imports weight measurements from a scale CSV export
4. Deletes all weight data from the weight data source`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config.SetDefaults(a.v)

	rootCmd.PersistentFlags().String("secrets", "", "Path to secrets.yml (default: next to the executable)")
	rootCmd.PersistentFlags().String("code", "", "OAuth authorization code or redirect URL (prompted when empty)")
	rootCmd.PersistentFlags().String("user", fit.DefaultUserID, "Google Fit user id")
	_ = a.v.BindPFlag("secrets", rootCmd.PersistentFlags().Lookup("secrets"))
	_ = a.v.BindPFlag("code", rootCmd.PersistentFlags().Lookup("code"))
	_ = a.v.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user"))

	rootCmd.AddCommand(newImportCmd(a))
	rootCmd.AddCommand(newDeleteCmd(a))
	return rootCmd
}

func main() {
	Execute()
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(newApp()).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a fatal error to the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, config.ErrConfigMissing), errors.Is(err, config.ErrConfigIncomplete):
		return 2
	case errors.Is(err, auth.ErrAuthorizationFailed):
		return 3
	case errors.Is(err, errInput), errors.Is(err, weight.ErrNoPoints):
		return 4
	case errors.Is(err, fit.ErrDatasetWrite), errors.Is(err, fit.ErrDatasetRead), errors.Is(err, fit.ErrDataSourceCreate):
		return 5
	case errors.Is(err, fit.ErrDatasetDelete), errors.Is(err, fit.ErrDataSourceList):
		return 6
	default:
		return 1
	}
}

// connect loads the secrets, runs the authorization flow and returns a Fit client
func (a *app) connect(ctx context.Context, out io.Writer, s *config.Settings) (*config.Secrets, *fit.Client, error) {
	secrets, err := config.LoadSecrets(s.SecretsPath)
	if err != nil {
		return nil, nil, err
	}

	authorizer := auth.New(secrets, Scope)
	if a.oauthEndpoint != nil {
		authorizer.WithEndpoint(*a.oauthEndpoint)
	}

	fmt.Fprintln(out, "Copy this url to web browser for authorization: ")
	fmt.Fprintln(out, authorizer.AuthCodeURL())

	code := s.AuthCode
	if code != "" {
		code, err = authorizer.ParseCode(code)
	} else {
		fmt.Fprint(out, "Copy the code (or the whole redirect URL) and input here: ")
		code, err = authorizer.ReadCode(a.in)
	}
	if err != nil {
		return nil, nil, err
	}

	tok, err := authorizer.Exchange(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	client, err := fit.NewClient(ctx, authorizer.HTTPClient(ctx, tok), s.UserID, a.apiOptions...)
	if err != nil {
		return nil, nil, err
	}
	return secrets, client, nil
}
