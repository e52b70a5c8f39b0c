package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	models "student-repetition-dashboard/app/models"
	"student-repetition-dashboard/app/repository"
	"student-repetition-dashboard/app/service"
)

func viewCmd(rt *cliState) *cobra.Command {
	var (
		schools []string
		levels  []int
		asc     bool
		labels  string
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Print the filtered repetition view",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := models.FilterQuery{
				Schools:   schools,
				Levels:    levels,
				Sort:      "desc",
				Labels:    labels,
				Submitted: cmd.Flags().Changed("school") || cmd.Flags().Changed("level"),
			}
			if asc {
				q.Sort = "asc"
			}
			// flag yang tidak diisi tetap berarti "semua"
			if !cmd.Flags().Changed("school") {
				q.Schools = toStrings(models.AllSchools)
			}
			if !cmd.Flags().Changed("level") {
				q.Levels = models.AllLevels
			}

			filter, mode, err := service.ParseFilter(q)
			if err != nil {
				return err
			}

			repo := repository.NewRepetitionRepository()
			view := service.BuildView(repo.All(), filter, mode)
			return printView(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().StringSliceVar(&schools, "school", nil, "schools to include (repeatable)")
	cmd.Flags().IntSliceVar(&levels, "level", nil, "repetition levels to include (1-4)")
	cmd.Flags().BoolVar(&asc, "asc", false, "sort schools ascending by total")
	cmd.Flags().StringVar(&labels, "labels", "value", "bar labels: value or percent")
	return cmd
}

func toStrings(in []models.School) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

func printView(w io.Writer, view models.DerivedView) error {
	if view.Empty {
		_, err := fmt.Fprintln(w, service.EmptyWarning)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ESCUELA\tREPITENCIA\tESTUDIANTES\tETIQUETA")
	for _, b := range view.Bars {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", b.School, models.LevelName(b.Level), b.Students, b.Label)
	}
	fmt.Fprintf(tw, "\nEscuelas: %d\tTotal: %s\n", view.Metrics.NumSchools, view.Metrics.TotalStudentsText)
	return tw.Flush()
}
