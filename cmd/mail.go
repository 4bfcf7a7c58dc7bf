package cmd

import (
	"fmt"

	"helperkit/core/config"
	"helperkit/core/logger"
	"helperkit/feature/mailer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	mailSubject string
	mailBody    string
	mailAttach  []string
)

// mailCmd groups mailer commands.
var mailCmd = &cobra.Command{
	Use:   "mail",
	Short: "Send mail through the configured SMTP server",
}

var mailSendCmd = &cobra.Command{
	Use:   "send [recipient...]",
	Short: "Send a message to the given recipients",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
		if err != nil {
			return err
		}

		svc, err := mailer.NewService(cfg.Mail, logg)
		if err != nil {
			return err
		}

		msg := mailer.Message{
			To:      args,
			Subject: mailSubject,
			Body:    mailBody,
		}
		for _, path := range mailAttach {
			msg.Attachments = append(msg.Attachments, mailer.Attachment{Path: path})
		}

		if err := svc.Send(cmd.Context(), msg); err != nil {
			return err
		}

		logg.Info("Mail sent", zap.Strings("to", args), zap.String("subject", mailSubject))
		return nil
	},
}

func init() {
	mailSendCmd.Flags().StringVarP(&mailSubject, "subject", "s", "", "message subject")
	mailSendCmd.Flags().StringVarP(&mailBody, "body", "b", "", "plain text body")
	mailSendCmd.Flags().StringArrayVarP(&mailAttach, "attach", "a", nil, "file to attach (repeatable)")

	mailCmd.AddCommand(mailSendCmd)
	RootCmd.AddCommand(mailCmd)
}
