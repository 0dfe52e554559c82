package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"clinic-frontdesk/internal/adapters/catalogfile"
	rtredis "clinic-frontdesk/internal/adapters/realtime/redis"
	pg "clinic-frontdesk/internal/adapters/storage/postgres"
	"clinic-frontdesk/internal/config"
	"clinic-frontdesk/internal/domain/dashboard"
	"clinic-frontdesk/internal/domain/registrations"
	"clinic-frontdesk/internal/platform/logger"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "clinicctl",
		Short:        "Operaciones de la base y del realtime de clinic-frontdesk",
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedItemsCmd(), newWatchCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL sobre DB_DSN",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return errors.New("DB_DSN is required")
			}
			db, err := pg.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			v, err := pg.Migrate(db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", v)
			return nil
		},
	}
}

func newSeedItemsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed-items",
		Short: "Carga el catálogo de items desde un archivo TOML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if file == "" {
				file = cfg.ItemsFile
			}
			if file == "" {
				return errors.New("--file (or ITEMS_FILE) is required")
			}
			if cfg.DatabaseURL == "" {
				return errors.New("DB_DSN is required")
			}

			list, err := catalogfile.Load(file)
			if err != nil {
				return err
			}

			db, err := pg.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := pg.NewItemsRepo(db).Upsert(cmd.Context(), list); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d items loaded\n", len(list))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "archivo TOML del catálogo")
	return cmd
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Sigue el realtime de Redis e imprime los totales del dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.RedisURL == "" {
				return errors.New("REDIS_URL is required")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client, err := rtredis.Open(ctx, cfg.RedisURL)
			if err != nil {
				return err
			}
			defer client.Close()

			log := logger.New(logger.Options{
				Level:  logger.ParseLevel(cfg.LogLevel),
				Format: logger.ParseFormat(cfg.LogFormat),
				App:    "clinicctl",
				Out:    cmd.ErrOrStderr(),
			})
			today := time.Now().In(cfg.Location).Format(registrations.DateLayout)
			return watch(ctx, rtredis.New(client, cfg.RealtimeChannelPrefix, log), today, log, cmd.OutOrStdout())
		},
	}
}

// watch arranca con la sesión vacía: sólo refleja lo que llega del día desde que se suscribe.
func watch(ctx context.Context, sub *rtredis.PubSub, date string, log logger.Logger, out io.Writer) error {
	r := dashboard.NewReconciler(sub, dashboard.NewSession(date, nil), dashboard.ReconcilerOptions{
		Logger: log,
		OnApplied: func(s dashboard.Summary) {
			printSummary(out, s)
		},
	})
	if err := r.Subscribe(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "watching realtime; Ctrl+C to stop")

	err := r.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printSummary(out io.Writer, s dashboard.Summary) {
	fmt.Fprintf(out, "paid:   cars=%d dogs=%d cats=%d rabies=%d distemper=%d\n",
		s.Paid.Registrations, s.Paid.TotalDogs, s.Paid.TotalCats, s.Paid.TotalRabiesDoses, s.Paid.TotalDistemperDoses)
	fmt.Fprintf(out, "unpaid: cars=%d dogs=%d cats=%d rabies=%d distemper=%d\n",
		s.Unpaid.Registrations, s.Unpaid.TotalDogs, s.Unpaid.TotalCats, s.Unpaid.TotalRabiesDoses, s.Unpaid.TotalDistemperDoses)
}
