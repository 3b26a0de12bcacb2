package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/southpawriter02/rune-rust-sub041/core/loader"
	"github.com/southpawriter02/rune-rust-sub041/core/logger"
	"github.com/southpawriter02/rune-rust-sub041/core/middleware/auth"
	"github.com/southpawriter02/rune-rust-sub041/core/middleware/rayid"
	"github.com/southpawriter02/rune-rust-sub041/feature/integrity"
	"github.com/southpawriter02/rune-rust-sub041/feature/registry"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the rules server",
	Long:  `Starts the HTTP server and serves every rules catalog.`,
	Run: func(cmd *cobra.Command, args []string) {
		e, err := bootstrap()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := e.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		reg := registry.New(e.source, logg)
		if e.cfg.Catalog.Warm {
			// A broken catalog keeps the server up; its endpoints answer 500.
			if err := reg.Warm(); err != nil {
				logg.Error("Catalog warm-up failed", zap.Error(err))
			}
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           e.cfg.Server.ReadTimeout(),
		})

		mgr := loader.NewManager(logg)
		mgr.Register(integrity.NewFeature(reg, e.store, e.cfg.Storage.Bucket, e.cfg.Catalog.Prefix, e.db, logg))
		for _, f := range reg.Features(logg) {
			mgr.Register(f)
		}

		// RayID goes first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Use(auth.New(auth.Config{ApiKey: e.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", e.cfg.Server.Port))
			if err := app.Listen(":" + e.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
