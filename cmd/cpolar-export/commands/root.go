package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"cpolar-export/internal/components/chrono"
	"cpolar-export/internal/components/telemetry"
	"cpolar-export/internal/config"
	"cpolar-export/internal/export"
	"cpolar-export/internal/runner"

	"github.com/spf13/cobra"
)

// Exit statuses: missing credentials is a usage problem and distinct from a
// failed run.
const (
	exitRunFailed          = 1
	exitMissingCredentials = 2
)

var (
	flagEmail    *string
	flagPassword *string
	flagOutJSON  *string
	flagOutCSV   *string
	flagOutHTML  *string
	flagFilter   *string
	flagTable    *bool
)

func init() {
	flags := rootCmd.Flags()
	flagEmail = flags.String("email", "", "Dashboard login email (or CPOLAR_EMAIL).")
	flagPassword = flags.String("password", "", "Dashboard login password (or CPOLAR_PASSWORD).")
	flagOutJSON = flags.String("out-json", "", "Write the JSON export to this path.")
	flagOutCSV = flags.String("out-csv", "", "Write the CSV export to this path.")
	flagOutHTML = flags.String("out-html", "./online_tunnels.html", "Write the HTML report to this path.")
	flagFilter = flags.String("filter", "", "Keep only tunnels whose name contains this keyword.")
	flagTable = flags.Bool("table", false, "Also print the result as a console table.")
}

var rootCmd = &cobra.Command{
	Use:   "cpolar-export [--out-json <path>] [--out-csv <path>] [--out-html <path>] [--filter <keyword>]",
	Short: "cpolar-export scrapes the online tunnels of a cpolar account and exports them as JSON/CSV/HTML.",
	Run: func(cmd *cobra.Command, args []string) {
		creds := resolveCredentials()
		if creds.Missing() {
			fmt.Fprintln(os.Stderr, "missing email or password: pass --email/--password, set CPOLAR_EMAIL/CPOLAR_PASSWORD, or create config.json5")
			os.Exit(exitMissingCredentials)
		}

		cfg := config.Config{
			Credentials: creds,
			Filter:      *flagFilter,
			OutJSON:     *flagOutJSON,
			OutCSV:      *flagOutCSV,
			OutHTML:     *flagOutHTML,
		}

		slog.Info("scraping dashboard", "email", cfg.Email)

		r := runner.New(chrono.StandardImpl{}, telemetry.SlogAPI{})
		records, err := r.Run(cmd.Context(), cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "export failed:", err)
			os.Exit(exitRunFailed)
		}

		if err := export.WriteJSON(os.Stdout, records); err != nil {
			fmt.Fprintln(os.Stderr, "export failed:", err)
			os.Exit(exitRunFailed)
		}
		if *flagTable {
			export.WriteTable(os.Stdout, records)
		}
	},
}

// resolveCredentials layers the credential sources: flags beat the config
// file, the config file beats the environment.
func resolveCredentials() config.Credentials {
	creds, err := config.FromEnv()
	if err != nil {
		slog.Warn("reading credentials from environment", "err", err)
	}

	fileCreds, err := config.ReadFile[config.Credentials]("config.json5")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("reading config.json5", "err", err)
	}
	if fileCreds.Email != "" {
		creds.Email = fileCreds.Email
	}
	if fileCreds.Password != "" {
		creds.Password = fileCreds.Password
	}

	if *flagEmail != "" {
		creds.Email = *flagEmail
	}
	if *flagPassword != "" {
		creds.Password = *flagPassword
	}
	return creds
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitRunFailed)
	}
}
