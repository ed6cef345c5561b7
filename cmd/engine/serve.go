package main

import (
	"jobsearch-engine/internal/httpapi"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = e.log.Sync() }()

		addr := viper.GetString("addr")
		if addr == "" {
			addr = e.cfg.App.Addr
		}

		h := httpapi.NewHandler(httpapi.Deps{
			Service:    e.service(),
			Log:        e.log,
			Config:     e.cfg,
			ConfigPath: e.cfgPath,
		})
		e.log.Info("starting the engine", zap.String("version", version), zap.Int("sources", len(e.cfg.Sources)))
		return httpapi.Serve(cmd.Context(), addr, h, e.log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default from config app.addr)")
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
}
