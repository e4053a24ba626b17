package cli

import (
	"context"
	"fmt"
	"os"

	ledgerapp "github.com/rentdesk/backend/internal/application/ledger"
	"github.com/rentdesk/backend/internal/bootstrap"
	"github.com/spf13/cobra"
)

func generateCmd(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Materialize a tenant's rent periods through a horizon",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := parseUUIDFlag(cmd, "tenant")
			if err != nil {
				return err
			}
			horizon, err := parseDateFlag(cmd, "through", env.Today)
			if err != nil {
				return err
			}
			return withLedger(cmd, env, func(ctx context.Context, l *bootstrap.Ledger) error {
				periods, err := l.Service.GenerateForTenant(ctx, tenantID, horizon)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "generated %d period(s) through %s\n", len(periods), horizon)
				return printJSON(env.Out, periods)
			})
		},
	}
	cmd.Flags().String("tenant", "", "Tenant ID")
	cmd.Flags().String("through", "", "Horizon date (YYYY-MM-DD), defaults to today")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}

func allocateCmd(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Reverse and re-run the allocation of one payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			paymentID, err := parseUUIDFlag(cmd, "payment")
			if err != nil {
				return err
			}
			return withLedger(cmd, env, func(ctx context.Context, l *bootstrap.Ledger) error {
				payment, err := l.Service.ReallocatePayment(ctx, paymentID)
				if err != nil {
					return err
				}
				return printJSON(env.Out, payment)
			})
		},
	}
	cmd.Flags().String("payment", "", "Payment ID")
	_ = cmd.MarkFlagRequired("payment")
	return cmd
}

func arrearsCmd(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arrears",
		Short: "Show what a tenant owes as of a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := parseUUIDFlag(cmd, "tenant")
			if err != nil {
				return err
			}
			asOf, err := parseDateFlag(cmd, "as-of", env.Today)
			if err != nil {
				return err
			}
			generate, _ := cmd.Flags().GetBool("generate")
			return withLedger(cmd, env, func(ctx context.Context, l *bootstrap.Ledger) error {
				arrears, err := l.Service.GetArrears(ctx, tenantID, asOf, generate)
				if err != nil {
					return err
				}
				return printJSON(env.Out, arrears)
			})
		},
	}
	cmd.Flags().String("tenant", "", "Tenant ID")
	cmd.Flags().String("as-of", "", "As-of date (YYYY-MM-DD), defaults to today")
	cmd.Flags().Bool("generate", false, "Generate due periods before aggregating")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}

func collectionsCmd(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "Report cash collected in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			tenantID, err := parseOptionalUUIDFlag(cmd, "tenant")
			if err != nil {
				return err
			}
			propertyID, err := parseOptionalUUIDFlag(cmd, "property")
			if err != nil {
				return err
			}
			xlsxPath, _ := cmd.Flags().GetString("xlsx")

			q := ledgerapp.CollectionsQuery{Start: start, End: end, TenantID: tenantID, PropertyID: propertyID}
			return withLedger(cmd, env, func(ctx context.Context, l *bootstrap.Ledger) error {
				if xlsxPath == "" {
					summary, err := l.Service.GetCollections(ctx, q)
					if err != nil {
						return err
					}
					return printJSON(env.Out, summary)
				}

				data, name, err := l.Service.ExportCollections(ctx, q)
				if err != nil {
					return err
				}
				if err := os.WriteFile(xlsxPath, data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", xlsxPath, err)
				}
				fmt.Fprintf(env.Out, "wrote %s (%s, %d bytes)\n", xlsxPath, name, len(data))
				return nil
			})
		},
	}
	cmd.Flags().String("start", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "Range end (YYYY-MM-DD), inclusive")
	cmd.Flags().String("tenant", "", "Tenant filter")
	cmd.Flags().String("property", "", "Property filter")
	cmd.Flags().String("xlsx", "", "Write an XLSX workbook to this path instead of printing JSON")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
