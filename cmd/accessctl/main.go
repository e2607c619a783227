// accessctl is the operator tool for the access service. It signs a
// short-lived admin token with the shared ACCESS_JWT_SECRET and calls the
// API through the SDK.
//
// Usage:
//
//	accessctl [global flags] <command> [command flags]
//
// Commands: generate, validate, redeem, renew, enqueue, wait, run-job, jobs,
// settings, set-wait.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/aussiebroadwan/lounge/pkg/accesssdk"
	"github.com/aussiebroadwan/lounge/pkg/jwtx"
	"github.com/spf13/pflag"
)

type globals struct {
	URL     string
	Secret  string
	Issuer  string
	Subject string
	Scope   string
	Timeout time.Duration
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var g globals

	flagSet := pflag.NewFlagSet("accessctl", pflag.ContinueOnError)
	flagSet.StringVar(&g.URL, "url", envOr("ACCESS_URL", "http://localhost:8080"), "access service base URL")
	flagSet.StringVar(&g.Secret, "secret", os.Getenv("ACCESS_JWT_SECRET"), "HS256 secret shared with the service")
	flagSet.StringVar(&g.Issuer, "issuer", envOr("ACCESS_JWT_ISSUER", "lounge-access"), "token issuer")
	flagSet.StringVar(&g.Subject, "as", envOr("USER", "accessctl"), "subject recorded as the caller")
	flagSet.StringVar(&g.Scope, "scope", jwtx.ScopeAdmin, "scope to sign into the token")
	flagSet.DurationVar(&g.Timeout, "timeout", 60*time.Second, "overall request timeout")
	flagSet.SetInterspersed(false)
	flagSet.Usage = func() { printUsage(flagSet) }

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printUsage(flagSet)
		return errors.New("no command given")
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", rest[0])
	}

	client, err := newClient(g)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	out, err := cmd.run(ctx, client, rest[1:])
	if err != nil {
		return err
	}
	return printJSON(out)
}

func newClient(g globals) (*accesssdk.Client, error) {
	signer, err := jwtx.NewHS256([]byte(g.Secret), g.Issuer)
	if err != nil {
		return nil, fmt.Errorf("--secret: %w", err)
	}
	token, err := signer.Sign(jwtx.NewClaims(g.Subject, []string{g.Scope}, jwtx.DefaultAccessTokenTTL, g.Issuer, time.Now()))
	if err != nil {
		return nil, err
	}
	return accesssdk.NewClient(g.URL, token), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printUsage(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage: accessctl [global flags] <command> [command flags]\n\nCommands:\n")
	for _, name := range commandOrder {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(os.Stderr, "\nGlobal flags:\n%s", flagSet.FlagUsages())
}
