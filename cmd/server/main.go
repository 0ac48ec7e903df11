package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reelops/reelsweep/internal/server"
	"github.com/reelops/reelsweep/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "reelsweep",
	Short:   "ReelSweep media library reconciliation server",
	Version: version.Detailed(),
	RunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil && cmd.Flag("env-file").Changed {
				return err
			}
		}

		viper.BindPFlag("addr", cmd.Flags().Lookup("bind"))
		viper.BindPFlag("db_path", cmd.Flags().Lookup("db"))
		viper.BindPFlag("cert_file", cmd.Flags().Lookup("cert"))
		viper.BindPFlag("key_file", cmd.Flags().Lookup("key"))

		config, err := server.LoadConfig()
		if err != nil {
			return err
		}

		cmd.SilenceUsage = true

		s, err := server.New(config)
		if err != nil {
			return err
		}
		defer slog.Info("Bye!")
		return s.Start(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().StringP("bind", "b", server.DefaultAddr, "Address to bind the server")
	rootCmd.Flags().String("db", server.DefaultDBPath, "Path to the operation journal database")
	rootCmd.Flags().StringP("cert", "c", "", "Path to the TLS certificate file")
	rootCmd.Flags().StringP("key", "k", "", "Path to the TLS key file")
	rootCmd.Flags().String("env-file", ".env", "Path to an env file with directory roots")
}

func main() {
	handler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
	})
	slog.SetDefault(slog.New(handler))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
