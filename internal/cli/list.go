package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/tenancy"
)

func newTenantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tenants",
		Short: "List tenants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			tenants, err := newAPIClient(cfg).ListTenants(cmd.Context())
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), tenants)
			}
			return printTenantTable(cmd.OutOrStdout(), tenants)
		},
	}
}

func newRoomsCmd() *cobra.Command {
	var available bool

	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "List rooms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRooms(cmd, available)
		},
	}

	cmd.Flags().BoolVar(&available, "available", false, "only list unoccupied rooms")

	return cmd
}

func newPaymentsCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "payments",
		Short: "List payments",
		Long:  "List all payments, optionally filtered to one month (YYYY-MM).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			payments, err := newAPIClient(cfg).ListPayments(cmd.Context(), month)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), payments)
			}
			return printPaymentTable(cmd.OutOrStdout(), payments)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only list payments for this month (YYYY-MM)")

	return cmd
}

func newMaintenanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maintenance",
		Short: "List maintenance requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			requests, err := newAPIClient(cfg).ListMaintenance(cmd.Context())
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), requests)
			}
			return printMaintenanceTable(cmd.OutOrStdout(), requests)
		},
	}
}

func newVacateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vacate",
		Short: "List vacate requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			requests, err := newAPIClient(cfg).ListVacateRequests(cmd.Context())
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), requests)
			}
			return printVacateTable(cmd.OutOrStdout(), requests)
		},
	}
}

func runRooms(cmd *cobra.Command, available bool) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	rooms, err := newAPIClient(cfg).ListRooms(cmd.Context())
	if err != nil {
		return err
	}
	if available {
		rooms = tenancy.Available(rooms)
	}
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), rooms)
	}
	return printRoomTable(cmd.OutOrStdout(), rooms)
}
