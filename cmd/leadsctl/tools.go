package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/umalmyha/leads/internal/auth"
)

func (c *cli) challengeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "challenge",
		Short: "Issue arithmetic challenge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			challenge, err := a.services.Captcha.Issue(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(c.out, "%s\nWhat is %d + %d? (expires at %s)\n",
				challenge.ID, challenge.Num1, challenge.Num2, challenge.ExpiresAt.Format("15:04:05 MST"))
			return nil
		},
	}
}

func (c *cli) hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Generate bcrypt hash for AUTH_ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			hash, err := auth.GeneratePasswordHash(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(c.out, hash)
			return nil
		},
	}
}
