package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var outputPath string

// attachmentCmd groups the attachment commands
var attachmentCmd = &cobra.Command{
	Use:     "attachment",
	Aliases: []string{"att"},
	Short:   "List, download and delete attachments",
}

var attachmentListCmd = &cobra.Command{
	Use:   "list [message-id]",
	Short: "List attachments of a message, or of the whole inbox",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAttachmentList,
}

var attachmentDownloadCmd = &cobra.Command{
	Use:   "download <attachment-id>",
	Short: "Download an attachment",
	Args:  cobra.ExactArgs(1),
	RunE:  runAttachmentDownload,
}

var attachmentDeleteCmd = &cobra.Command{
	Use:   "delete <attachment-id>",
	Short: "Delete an attachment",
	Args:  cobra.ExactArgs(1),
	RunE:  runAttachmentDelete,
}

func init() {
	attachmentListCmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of attachments to fetch for the inbox (1-100)")
	attachmentListCmd.Flags().IntVar(&offset, "offset", 0, "number of attachments to skip for the inbox")

	attachmentDownloadCmd.Flags().StringVarP(&outputPath, "output", "o", "", "file to write (default is the attachment ID in the current directory, '-' for stdout)")

	attachmentCmd.AddCommand(attachmentListCmd, attachmentDownloadCmd, attachmentDeleteCmd)
	rootCmd.AddCommand(attachmentCmd)
}

func runAttachmentList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		attachments, err := client.MessageAttachments(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Print(formatAttachmentList(attachments))
		return nil
	}

	attachments, err := client.InboxAttachments(cmd.Context(), limit, offset)
	if err != nil {
		return err
	}
	fmt.Print(formatAttachmentList(attachments))
	return nil
}

func runAttachmentDownload(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	id := args[0]
	data, err := client.DownloadAttachment(cmd.Context(), id)
	if err != nil {
		return err
	}

	if outputPath == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	path := outputPath
	if path == "" {
		path = filepath.Base(id)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write attachment: %w", err)
	}

	fmt.Printf("✓ Saved %s (%s)\n", path, formatSize(uint64(len(data))))
	return nil
}

func runAttachmentDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if err := client.DeleteAttachment(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted attachment %s\n", args[0])
	return nil
}
