package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/tmail/barid"
)

// domainsCmd represents the domains command
var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the domains the service accepts mail for",
	Args:  cobra.NoArgs,
	RunE:  runDomains,
}

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the service",
	Long: `Check the health of the barid.site worker, database and KV store.

Exits with a non-zero status when any of them reports disconnected.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show inbox size, accepted domains and service health",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(domainsCmd, healthCmd, statusCmd)
}

func runDomains(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	domains, err := client.Domains(cmd.Context())
	if err != nil {
		return err
	}

	for _, domain := range domains {
		fmt.Println(domain)
	}
	return nil
}

func runHealth(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	health, err := client.Health(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Print(formatHealth(health))
	if !health.Healthy() {
		return fmt.Errorf("service is degraded")
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	var (
		count   uint32
		domains []string
		health  *barid.ServerHealth
	)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		count, err = client.CountMessages(ctx)
		if err != nil {
			return fmt.Errorf("failed to count messages: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		domains, err = client.Domains(ctx)
		if err != nil {
			return fmt.Errorf("failed to list domains: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		health, err = client.Health(ctx)
		if err != nil {
			return fmt.Errorf("failed to check health: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("Inbox:    %s\n", client.Email())
	fmt.Printf("Messages: %d\n", count)
	fmt.Printf("Domains:  %s\n", strings.Join(domains, ", "))
	fmt.Print(formatHealth(health))
	return nil
}
