package cmd

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"student-repetition-dashboard/app/render"
	"student-repetition-dashboard/app/repository"
	"student-repetition-dashboard/app/service"
)

func exportCmd(rt *cliState) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the static repetition chart as a PDF document",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := repository.NewRepetitionRepository()
			view := service.StaticView(repo.All())

			var buf bytes.Buffer
			if err := render.StaticPDF(&buf, view, render.StaticOptions{Title: rt.cfg.Title, Created: time.Now()}); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			log.Info().Str("path", out).Int("bytes", buf.Len()).Msg("static chart exported")
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", render.PDFDownloadName, "output file")
	return cmd
}
