package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tuannm99/kvsql"
	"github.com/tuannm99/kvsql/internal"
	"github.com/tuannm99/kvsql/internal/kv"
	"github.com/tuannm99/kvsql/internal/logging"
	"github.com/tuannm99/kvsql/server/kvsqlwire"
)

var serveCfgPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the TCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := internal.LoadConfig(serveCfgPath)
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if cfg.Server.Debug {
			level = "debug"
		}
		log, closeLog := logging.Setup(level, cfg.Logging.SeqURL)
		defer closeLog()
		slog.SetDefault(log)

		db := kvsql.Open(kv.NewMemory(),
			kvsql.WithRoot(cfg.Root),
			kvsql.WithLogger(log),
		)
		srv := kvsqlwire.NewServer(kvsqlwire.ServerConfig{Addr: cfg.Server.Addr}, db, log)
		return srv.Run()
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveCfgPath, "config", "c", "config.yaml", "config file path")
}
