package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"tool-compare-data/core/loader"
	"tool-compare-data/core/logger"
	"tool-compare-data/core/middleware/auth"
	"tool-compare-data/core/middleware/rayid"
	"tool-compare-data/feature/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "tool-compare-data/docs/swagger"
)

// @title Data Reconciliation API
// @version 1.0
// @description API for comparing source and target record sets.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the validation API server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		logg := env.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := env.cfg.Server.Validate(); err != nil {
			return err
		}
		if env.cfg.Server.ApiKey == "" {
			logg.Warn("API key is empty, serving without authentication")
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             env.cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager()
		mgr.Register(validation.NewFeature(env.store, env.cfg.Storage.Bucket, logg, env.db, env.cfg.Validation))

		// RayID first so every later log line is traceable
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

		// Swagger stays public
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: env.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", env.cfg.Server.Port))
			errCh <- app.Listen(env.cfg.Server.Address())
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-c:
		}
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
