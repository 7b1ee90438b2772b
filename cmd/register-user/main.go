// Command register-user creates a user account directly in the configured
// database, prompting for the password when it is not given as a flag.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dreis/minhasfinancas-api/internal/config"
	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/dreis/minhasfinancas-api/internal/platform/storage"
	"github.com/dreis/minhasfinancas-api/internal/redact"
	"github.com/dreis/minhasfinancas-api/internal/service"
	"github.com/dreis/minhasfinancas-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", redact.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("register-user", flag.ContinueOnError)
	fs.SetOutput(stderr)

	name := fs.String("name", "", "User name")
	email := fs.String("email", "", "User email (required)")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	driver := fs.String("driver", envOr("FINANCAS_DATABASE_DRIVER", storage.DriverSQLite), "Database driver: postgres or sqlite")
	dbURL := fs.String("db", envOr("FINANCAS_DATABASE_URL", "financas.db"), "Database URL or sqlite file path")
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*email) == "" {
		fmt.Fprintln(stdout, "Usage: register-user -email <email> [-name <name>] [-password <password>] [-driver <driver>] [-db <url>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	log := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	backend, err := storage.Open(ctx, config.DatabaseConfig{Driver: *driver, URL: *dbURL}, log)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = backend.Close() }()

	passwords := auth.NewBcryptVerifier(*cost)
	authService := service.NewAuthService(backend.Users, backend.TxRunner, passwords, passwords, log)

	user, err := authService.Register(ctx, domain.NewUser(*name, *email, password))
	if err != nil {
		var ruleErr *domain.BusinessRuleError
		if errors.As(err, &ruleErr) {
			return errors.New(ruleErr.Message)
		}
		return fmt.Errorf("failed to register user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s registered with ID %s\n", user.Email, user.ID)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// readPassword reads without echo from a terminal, or one line otherwise.
func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
