package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lmercier/maisoncafe/internal/adapters/export/xlsxreport"
	"github.com/lmercier/maisoncafe/internal/app"
	"github.com/lmercier/maisoncafe/internal/config"
	"github.com/lmercier/maisoncafe/internal/domain"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cliApp := &cli.App{
		Name:  "maisoncafe",
		Usage: "storefront demo backed by a local key-value store",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: runServe,
			},
			{
				Name:   "reset",
				Usage:  "wipe all persisted data and reseed the catalog",
				Action: runReset,
			},
			{
				Name:  "export",
				Usage: "write catalog and orders to an XLSX workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: "maisoncafe.xlsx", Usage: "output file"},
				},
				Action: runExport,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		zlog.Fatal().Err(err).Msg("command failed")
	}
}

func buildApp() (*app.App, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, cfg, err
	}
	a := app.NewApp(db, cfg)
	if err := a.Init(context.Background()); err != nil {
		return nil, cfg, err
	}
	return a, cfg, nil
}

func runServe(_ *cli.Context) error {
	a, cfg, err := buildApp()
	if err != nil {
		return err
	}

	server := &http.Server{Addr: cfg.Addr, Handler: a.HTTPHandler()}

	go func() {
		zlog.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func runReset(_ *cli.Context) error {
	a, _, err := buildApp()
	if err != nil {
		return err
	}
	if err := a.Catalog.ResetAll(context.Background()); err != nil {
		return err
	}
	zlog.Info().Msg("store reset and reseeded")
	return nil
}

func runExport(c *cli.Context) error {
	a, _, err := buildApp()
	if err != nil {
		return err
	}
	ctx := context.Background()
	products, err := a.Catalog.List(ctx, domain.ProductFilter{})
	if err != nil {
		return err
	}
	orders, err := a.Orders.Orders(ctx)
	if err != nil {
		return err
	}
	f, err := xlsxreport.Build(products, orders)
	if err != nil {
		return err
	}
	out := c.String("out")
	if err := f.SaveAs(out); err != nil {
		return err
	}
	zlog.Info().Str("file", out).Int("products", len(products)).Int("orders", len(orders)).Msg("report written")
	return nil
}
