// Package cli implements the ledgerctl admin commands
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/bootstrap"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/spf13/cobra"
)

// Opener builds the ledger the commands run against
type Opener func(ctx context.Context) (*bootstrap.Ledger, error)

// Env is what every command needs
type Env struct {
	Open  Opener
	Out   io.Writer
	Today func() valueobject.Date
}

// NewRootCmd builds the ledgerctl command tree
func NewRootCmd(env Env) *cobra.Command {
	if env.Out == nil {
		env.Out = os.Stdout
	}
	if env.Today == nil {
		env.Today = func() valueobject.Date { return valueobject.Today(time.UTC) }
	}

	root := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Rent ledger administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(env.Out)
	root.AddCommand(
		generateCmd(env),
		allocateCmd(env),
		arrearsCmd(env),
		collectionsCmd(env),
	)
	return root
}

// withLedger opens the ledger for one command and closes it afterwards
func withLedger(cmd *cobra.Command, env Env, fn func(ctx context.Context, l *bootstrap.Ledger) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	l, err := env.Open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()
	return fn(ctx, l)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseUUIDFlag(cmd *cobra.Command, name string) (uuid.UUID, error) {
	raw, _ := cmd.Flags().GetString(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("--%s must be a UUID: %w", name, err)
	}
	return id, nil
}

func parseOptionalUUIDFlag(cmd *cobra.Command, name string) (*uuid.UUID, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s must be a UUID: %w", name, err)
	}
	return &id, nil
}

func parseDateFlag(cmd *cobra.Command, name string, fallback func() valueobject.Date) (valueobject.Date, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return fallback(), nil
	}
	d, err := valueobject.ParseDate(raw)
	if err != nil {
		return valueobject.Date{}, fmt.Errorf("--%s must be a YYYY-MM-DD date", name)
	}
	return d, nil
}
