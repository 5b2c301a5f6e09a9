package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/umalmyha/leads/internal/config"
	apperrors "github.com/umalmyha/leads/internal/errors"
	"github.com/umalmyha/leads/internal/infra"
	"github.com/umalmyha/leads/internal/notify"
)

type cli struct {
	in       *bufio.Reader
	out      io.Writer
	errOut   io.Writer
	envFiles []string
}

// app is storage and services opened for a single command run
type app struct {
	storage  *infra.Storage
	services *infra.Services
	closers  []func() error
}

func (a *app) Close() error {
	errs := make([]error, 0, len(a.closers))
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{in: bufio.NewReader(in), out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:   "leadsctl",
		Short: "Manage captured housing requirements",
		Long: `leadsctl works with the same storage as the leads API.

Available subcommands:
  list          - List requirements matching criteria
  export        - Export requirements matching criteria to csv
  status        - Change requirement status
  delete        - Delete requirement
  challenge     - Issue arithmetic challenge
  hash-password - Generate bcrypt hash for AUTH_ADMIN_PASSWORD_HASH`,
		SilenceUsage: true,
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.PersistentFlags().StringSliceVar(&c.envFiles, "env-file", nil, "env files to load before reading environment")

	rootCmd.AddCommand(
		c.listCmd(),
		c.exportCmd(),
		c.statusCmd(),
		c.deleteCmd(),
		c.challengeCmd(),
		c.hashPasswordCmd(),
	)
	return rootCmd
}

func (c *cli) open(ctx context.Context) (*app, error) {
	cfg, err := config.Build(c.envFiles...)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(c.errOut)
	logger.SetLevel(logrus.WarnLevel)

	storage, err := infra.BuildStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a := &app{storage: storage, closers: []func() error{storage.Close}}

	notifier := notify.Nop()
	if cfg.NotifyCfg.AmqpURL != "" {
		publisher, err := notify.NewAmqpPublisher(cfg.NotifyCfg.AmqpURL, cfg.NotifyCfg.AmqpExchange)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append([]func() error{publisher.Close}, a.closers...)
		notifier = notify.Multi(logger, publisher)
	}

	services, err := infra.BuildServices(cfg, storage, notifier, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.services = services
	return a, nil
}

// confirm runs action unconfirmed first and asks admin once it reports confirmation is needed
func (c *cli) confirm(yes bool, action func(confirmed bool) error) error {
	if yes {
		return action(true)
	}

	err := action(false)

	var confirmationErr *apperrors.ConfirmationErr
	if !errors.As(err, &confirmationErr) {
		return err
	}

	fmt.Fprintf(c.out, "%s [y/N]: ", confirmationErr.Prompt())
	answer, readErr := c.in.ReadString('\n')
	if readErr != nil && !errors.Is(readErr, io.EOF) {
		return readErr
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return action(true)
	default:
		fmt.Fprintln(c.out, "Cancelled")
		return nil
	}
}
