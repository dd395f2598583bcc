package commands

import (
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/codeblaze/portal/pkg/client"
)

func newJobsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Browse open positions",
	}
	cmd.AddCommand(newJobsListCmd(a), newJobsGetCmd(a))
	return cmd
}

func newJobsListCmd(a *app) *cobra.Command {
	var p client.ListJobsParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List job postings, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			page, err := a.client.ListJobs(ctx, p)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tTYPE\tDEPARTMENT\tLOCATION\tDEADLINE")
			for _, j := range page.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					j.ID, j.Title, j.EmploymentType, j.Department, j.Location, dash(j.ApplicationDeadline))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d jobs)\n",
				page.Pagination.Page, page.Pagination.TotalPages, page.Pagination.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Department, "department", "", "filter by department")
	cmd.Flags().StringVar(&p.Location, "location", "", "filter by location")
	cmd.Flags().StringVar(&p.EmploymentType, "type", "", "filter by employment type")
	cmd.Flags().StringVarP(&p.Query, "query", "q", "", "search title and description")
	cmd.Flags().BoolVar(&p.OpenOnly, "open", false, "only postings still accepting applications")
	cmd.Flags().IntVar(&p.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&p.Limit, "limit", 10, "jobs per page")
	return cmd
}

func newJobsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one job posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			j, err := a.client.GetJob(ctx, args[0])
			if client.IsStatus(err, http.StatusNotFound) {
				return fmt.Errorf("no job posting with id %s", args[0])
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", j.Title, dash(j.EmploymentType))
			fmt.Fprintf(out, "%s, %s\n", dash(j.Department), dash(j.Location))
			fmt.Fprintf(out, "posted %s, apply by %s\n\n", j.PostedDate, dash(j.ApplicationDeadline))
			fmt.Fprintln(out, j.Description)
			printList(cmd, "Requirements", j.Requirements)
			printList(cmd, "Responsibilities", j.Responsibilities)
			printList(cmd, "Benefits", j.Benefits)
			return nil
		},
	}
}

func printList(cmd *cobra.Command, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n  - %s\n", title, strings.Join(items, "\n  - "))
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
