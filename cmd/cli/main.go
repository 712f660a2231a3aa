package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/infrastructure/auth"
	"github.com/iho/payproc/internal/infrastructure/config"
	"github.com/iho/payproc/internal/infrastructure/logger"
	"github.com/iho/payproc/internal/infrastructure/postgres"
)

// options are the persistent flags shared by API commands.
type options struct {
	baseURL        string
	timeout        time.Duration
	token          string
	idempotencyKey string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "payproc-cli",
		Short:         "PayProc CLI tool",
		Long:          `A command line interface for the PayProc payment processing API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the PayProc API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("PAYPROC_TOKEN"), "Bearer token for authenticated APIs")
	rootCmd.PersistentFlags().StringVar(&opts.idempotencyKey, "idempotency-key", "", "Idempotency-Key header for mutating requests")

	rootCmd.AddCommand(
		paymentsCmd(opts),
		statementCmd(opts),
		ledgerCmd(opts),
		migrateCmd(),
		authCmd(),
	)

	return rootCmd
}

func paymentsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Payment workflow operations",
	}

	var group string
	processCmd := &cobra.Command{
		Use:   "process PAYMENT_ID...",
		Short: "Move approved payments to processing",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, http.MethodPost, "/api/v1/payments/process",
				map[string]any{"payment_ids": args, "group": group})
		},
	}
	processCmd.Flags().StringVar(&group, "group", "", "Processing group to join, generated when empty")

	transition := func(name, short string) *cobra.Command {
		return &cobra.Command{
			Use:   name + " PAYMENT_ID...",
			Short: short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.call(cmd, http.MethodPost, "/api/v1/payments/"+name,
					map[string]any{"payment_ids": args})
			},
		}
	}

	moveCmd := &cobra.Command{
		Use:   "processing-move PAYMENT_ID",
		Short: "Show the processing move of a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, http.MethodGet, "/api/v1/payments/"+url.PathEscape(args[0])+"/processing-move", nil)
		},
	}

	cmd.AddCommand(
		processCmd,
		transition("succeed", "Mark payments as succeeded"),
		transition("fail", "Mark payments as failed"),
		moveCmd,
	)
	return cmd
}

func statementCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Statement line operations",
	}

	suggestCmd := &cobra.Command{
		Use:       "suggest LINE_ID FIELD",
		Short:     "Suggest field values after editing the invoice or payment of a line",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{domain.StatementFieldInvoice, domain.StatementFieldPayment},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := domain.ValidateChangeField(args[1]); err != nil {
				return err
			}
			path := fmt.Sprintf("/api/v1/statement-lines/%s/changes/%s", url.PathEscape(args[0]), args[1])
			return opts.call(cmd, http.MethodPost, path, nil)
		},
	}

	createMoveCmd := &cobra.Command{
		Use:   "create-move LINE_ID",
		Short: "Create the move of a statement line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, http.MethodPost, "/api/v1/statement-lines/"+url.PathEscape(args[0])+"/move", nil)
		},
	}

	cmd.AddCommand(suggestCmd, createMoveCmd)
	return cmd
}

func ledgerCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkConsistency(cmd, opts)
		},
	}

	cmd.AddCommand(consistencyCmd)
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	run := func(up bool) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			log := logger.NewWithWriter(logger.Config{Level: cfg.LogLevel, Format: "console"}, cmd.ErrOrStderr())
			migrator := postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, log)
			if up {
				return migrator.Up()
			}
			return migrator.Down()
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply all pending migrations", Args: cobra.NoArgs, RunE: run(true)},
		&cobra.Command{Use: "down", Short: "Roll back all migrations", Args: cobra.NoArgs, RunE: run(false)},
	)
	return cmd
}

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication helpers",
	}

	var (
		userID string
		role   string
	)
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a JWT signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if cfg.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}

			token, err := issueToken(auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration), userID, domain.Role(role))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&userID, "user", "cli", "User ID to put in the token")
	tokenCmd.Flags().StringVar(&role, "role", string(domain.RoleOperator), "Role: admin, operator or viewer")

	cmd.AddCommand(tokenCmd)
	return cmd
}

func issueToken(m *auth.JWTManager, userID string, role domain.Role) (string, error) {
	return m.Generate(&domain.User{ID: userID, Role: role})
}

// call sends a request to the API and prints the JSON response. Non-2xx
// responses are printed and returned as errors.
func (o *options) call(cmd *cobra.Command, method, path string, payload any) error {
	status, body, err := o.do(method, path, payload)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if status < 200 || status >= 300 {
		fmt.Fprintf(out, "Request failed (Status: %d)\n", status)
		printRaw(out, body)
		return fmt.Errorf("%s %s: status %d", method, path, status)
	}

	printRaw(out, body)
	return nil
}

func (o *options) do(method, path string, payload any) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, strings.TrimRight(o.baseURL, "/")+path, reader)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if o.token != "" {
		req.Header.Set("Authorization", "Bearer "+o.token)
	}
	if o.idempotencyKey != "" && method != http.MethodGet {
		req.Header.Set("Idempotency-Key", o.idempotencyKey)
	}

	client := &http.Client{Timeout: o.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, body, nil
}

func checkConsistency(cmd *cobra.Command, opts *options) error {
	status, body, err := opts.do(http.MethodGet, "/api/v1/ledger/consistency", nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	var result struct {
		Consistent      bool     `json:"consistent"`
		TotalDebit      string   `json:"total_debit"`
		TotalCredit     string   `json:"total_credit"`
		UnbalancedMoves []string `json:"unbalanced_moves"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Fprintf(out, "Consistency check FAILED (Status: %d)\nResponse: %s\n", status, truncate(string(body), 512))
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if status != http.StatusOK || !result.Consistent {
		fmt.Fprintf(out, "Consistency check FAILED (Status: %d)\n", status)
		fmt.Fprintf(out, "Debit: %s Credit: %s\n", result.TotalDebit, result.TotalCredit)
		for _, id := range result.UnbalancedMoves {
			fmt.Fprintf(out, "Unbalanced move: %s\n", id)
		}
		return fmt.Errorf("ledger is inconsistent")
	}

	fmt.Fprintf(out, "Consistency check PASSED\n")
	fmt.Fprintf(out, "Debit: %s Credit: %s\n", result.TotalDebit, result.TotalCredit)
	return nil
}

// printRaw pretty-prints body when it is JSON and writes it as is otherwise.
func printRaw(w io.Writer, body []byte) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Fprintln(w, strings.TrimSpace(string(body)))
		return
	}
	printJSON(w, v)
}

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
