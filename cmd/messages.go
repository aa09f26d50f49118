package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tmail/filter"
)

var (
	// list flags
	limit      int
	offset     int
	filterExpr string

	// read flags
	showHTML bool

	// delete flags
	deleteAll bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "inbox"},
	Short:   "List messages in the inbox",
	Long: `List messages received by the inbox, newest first as returned by the service.

Use --filter to narrow the page with an expression, for example:
  tmail list --filter 'fromDomain("github.com") and HasAttachments'
  tmail list --filter 'Subject contains "verify" and Received > hoursAgo(1)'`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read <message-id>",
	Short: "Show a single message",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete [message-id]",
	Short: "Delete a message, or every message with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDelete,
}

// countCmd represents the count command
var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count messages in the inbox",
	Args:  cobra.NoArgs,
	RunE:  runCount,
}

func init() {
	listCmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of messages to fetch (1-100)")
	listCmd.Flags().IntVar(&offset, "offset", 0, "number of messages to skip")
	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to the fetched page")

	readCmd.Flags().BoolVar(&showHTML, "html", false, "print the HTML body instead of the text body")

	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "delete every message in the inbox")

	rootCmd.AddCommand(listCmd, readCmd, deleteCmd, countCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	var messageFilter *filter.MessageFilter
	if filterExpr != "" {
		var err error
		messageFilter, err = filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	emails, err := client.ListMessages(cmd.Context(), limit, offset)
	if err != nil {
		return err
	}

	if messageFilter != nil {
		fetched := len(emails)
		emails = messageFilter.Apply(emails)
		logger.Debug().
			Str("filter", messageFilter.String()).
			Int("fetched", fetched).
			Int("matched", len(emails)).
			Msg("Applied message filter")
	}

	fmt.Print(formatMessageList(emails))
	return nil
}

func runRead(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	email, err := client.GetMessage(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Print(formatMessage(email, showHTML))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if deleteAll == (len(args) == 1) {
		return fmt.Errorf("specify either a message ID or --all")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	if deleteAll {
		deleted, err := client.DeleteMessages(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("✓ Deleted %d %s from %s\n", deleted, plural(int(deleted), "message", "messages"), client.Email())
		return nil
	}

	if err := client.DeleteMessage(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted message %s\n", args[0])
	return nil
}

func runCount(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	count, err := client.CountMessages(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("%s has %d %s\n", client.Email(), count, plural(int(count), "message", "messages"))
	return nil
}
