package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"student-repetition-dashboard/config"
	"student-repetition-dashboard/utils"
)

type cliState struct {
	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	rt := &cliState{}

	root := &cobra.Command{
		Use:           "dashboard",
		Short:         "Dashboard de repitencia estudiantil",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 1. Load .env lalu config
			config.LoadEnv()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			rt.cfg = cfg

			// 2. Logger global
			utils.NewLogger(cfg.LogLevel, cfg.LogPretty)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), rt.cfg)
		},
	}

	root.AddCommand(serveCmd(rt), exportCmd(rt), viewCmd(rt))
	return root
}

func Execute(ctx context.Context) error {
	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("dashboard failed")
		return err
	}
	return nil
}
