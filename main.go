package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/fridaybot/backend/internal/ai/openai"
	"github.com/fridaybot/backend/internal/charts"
	"github.com/fridaybot/backend/internal/config"
	"github.com/fridaybot/backend/internal/conversation"
	"github.com/fridaybot/backend/internal/models"
	"github.com/fridaybot/backend/internal/router"
	"github.com/fridaybot/backend/internal/sms"
)

func main() {
	// Load .env file for local development, production sets real
	// environment variables
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := models.Connect(cfg.DBPath); err != nil {
		log.Fatal().Msg(err.Error())
	}

	capability, err := openai.New(cfg.OpenAIAPIKey, openaiOptions(cfg)...)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	sender, err := sms.NewTwilio(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	options := conversation.Options{
		AssistantName:     cfg.AssistantName,
		GenerativeInquiry: cfg.GenerativeInquiry,
		VisualInquiry:     cfg.VisualInquiry,
		MediaBaseURL:      cfg.MediaBaseURL,
	}

	if cfg.VisualInquiry {
		renderer, err := charts.NewFileRenderer(cfg.MediaDir)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		options.Charts = renderer
	}

	service := conversation.New(models.DB, capability, capability, options)

	r, err := router.Router(router.Config{
		Service:          service,
		Sender:           sender,
		MediaDir:         cfg.MediaDir,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		EnablePprof:      cfg.EnablePprof,
	})
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("backend startup complete")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()

		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}

func openaiOptions(cfg *config.Config) []openai.Option {
	var options []openai.Option
	if cfg.OpenAIBaseURL != "" {
		options = append(options, openai.WithBaseURL(cfg.OpenAIBaseURL))
	}

	return options
}
