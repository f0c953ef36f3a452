package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sevenstarlining/sevenstar-api/internal/api/dto/v1/contact"
	"github.com/sevenstarlining/sevenstar-api/internal/service"
	"github.com/spf13/cobra"
)

var testEmailCmd = &cobra.Command{
	Use:   "test-email",
	Short: "Send a sample contact notification to the configured mailbox",
	Long: `Renders a sample submission and sends it through the configured provider.
Useful after rotating credentials.

Example:
  sevenstar-api test-email
  sevenstar-api test-email --to someone@example.com`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, info, logger := bootstrap()
		defer logger.Close()

		mailer, err := service.NewMailer(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot send: %v\n", err)
			os.Exit(1)
		}

		to, _ := cmd.Flags().GetString("to")
		if to == "" {
			to = cfg.ContactEmail
		}

		sample := &contact.ContactRequest{
			Name:    "Test Submission",
			Phone:   info.Contact.Phone,
			Service: "Configuration check",
			Message: "This is a test message sent from the sevenstar-api CLI.\nNo action is needed.",
		}
		msg, err := service.RenderNotification(sample, info, cfg.EmailFrom, to, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render email: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = fmt.Sprintf(" Sending test email via %s...", mailer.Name())
		s.Start()
		res, err := mailer.Send(ctx, msg)
		s.Stop()

		if err != nil {
			logger.Error("Test email failed: %v", err)
			fmt.Fprintf(os.Stderr, "✗ Failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Sent to %s (id %s)\n", to, res.ID)
	},
}

func init() {
	testEmailCmd.Flags().String("to", "", "Recipient (defaults to CONTACT_EMAIL)")
}
