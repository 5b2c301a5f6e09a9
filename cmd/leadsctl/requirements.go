package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/umalmyha/leads/internal/model"
)

type criteriaFlags struct {
	model.Criteria
	sort  string
	order string
}

func (f *criteriaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Search, "search", "", "case-insensitive search over name and locations")
	cmd.Flags().StringVar(&f.Status, "status", "", "exact status (New, Contacted, Closed, Spam)")
	cmd.Flags().StringVar(&f.LookingFor, "looking-for", "", "exact property kind (Gated, Semi-gated, Standalone)")
	cmd.Flags().StringVar(&f.MinBudget, "min-budget", "", "inclusive lower budget bound")
	cmd.Flags().StringVar(&f.MaxBudget, "max-budget", "", "inclusive upper budget bound")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort field (createdAt, budget, flatSize)")
	cmd.Flags().StringVar(&f.order, "order", "", "sort order (asc, desc)")
}

func (f *criteriaFlags) criteria() (model.Criteria, error) {
	c := f.Criteria

	switch model.SortField(f.sort) {
	case "", model.SortByCreatedAt, model.SortByBudget, model.SortByFlatSize:
		c.Sort = model.SortField(f.sort)
	default:
		return c, fmt.Errorf("unknown sort field %s", f.sort)
	}

	switch model.SortOrder(f.order) {
	case "", model.SortAsc, model.SortDesc:
		c.Order = model.SortOrder(f.order)
	default:
		return c, fmt.Errorf("unknown sort order %s", f.order)
	}
	return c, nil
}

func (c *cli) listCmd() *cobra.Command {
	var flags criteriaFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List requirements matching criteria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := flags.criteria()
			if err != nil {
				return err
			}

			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			requirements, err := a.services.Requirement.FindAll(cmd.Context(), criteria)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMOBILE\tBUDGET\tPREFERRED\tSTATUS\tCREATED")
			for _, r := range requirements {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%s\t%s\t%s\n",
					r.ID, r.Name, r.Mobile, r.Budget, r.PreferredLocation, r.Status, r.CreatedAt.Format("2006-01-02 15:04"))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(c.out, "%d requirement(s)\n", len(requirements))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var (
		flags criteriaFlags
		out   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export requirements matching criteria to csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := flags.criteria()
			if err != nil {
				return err
			}

			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if out == "" {
				out = a.services.Requirement.ExportFileName()
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create export file - %w", err)
			}

			if err := a.services.Requirement.Export(cmd.Context(), criteria, f); err != nil {
				f.Close()
				os.Remove(out)
				return err
			}

			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(c.out, "Exported to %s\n", out)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, dated file in current directory by default")
	return cmd
}

func (c *cli) statusCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change requirement status",
		Long: `Change requirement status.

Allowed moves are New to Contacted, Closed or Spam and Contacted to Closed.
Closing and marking as spam ask for confirmation unless --yes is set.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, status := args[0], model.Status(args[1])

			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			return c.confirm(yes, func(confirmed bool) error {
				if err := a.services.Requirement.SetStatus(cmd.Context(), id, status, confirmed); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "Requirement %s is %s\n", id, status)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "don't ask for confirmation")
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete requirement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			return c.confirm(yes, func(confirmed bool) error {
				if err := a.services.Requirement.DeleteByID(cmd.Context(), id, confirmed); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "Requirement %s deleted\n", id)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "don't ask for confirmation")
	return cmd
}
