package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/clubcorinto/resort/internal/catalog"
	"github.com/clubcorinto/resort/internal/config"
	"github.com/clubcorinto/resort/internal/idgen/simple"
	"github.com/clubcorinto/resort/internal/logger"
	"github.com/clubcorinto/resort/internal/migration"
	"github.com/clubcorinto/resort/internal/pricing"
	"github.com/clubcorinto/resort/internal/promo"
	"github.com/clubcorinto/resort/internal/reservation"
	"github.com/clubcorinto/resort/internal/storage/memory"
	"github.com/clubcorinto/resort/internal/transport/web"
)

func Run(l *logger.Logger) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	conf := config.Load()

	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("build accommodation catalog: %w", err)
	}

	storage := memory.New(memory.Config{L: l})

	now := time.Now().UTC()
	seedFrom := pricing.MinimumBookableDate(now)

	if err := migration.Up(ctx, l, storage, cat.All(), seedFrom, conf.SeedDays); err != nil {
		return fmt.Errorf("up availability migration: %w", err)
	}

	l.LogInfo("Availability migration has been applied")

	holidays := catalog.Holidays(now.Year(), now.Year()+1)

	idGen := simple.New()
	reservationManager := reservation.New(l, storage, idGen, cat, holidays)
	promoManager := promo.New(storage)

	webConf := web.Conf{
		L:                 l,
		ServerLogger:      log.Default(),
		Host:              conf.HTTPHost,
		Port:              conf.HTTPPort,
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		LivenessEndpoint:  conf.LivenessEndpoint,
	}

	srv, err := web.New(ctx, webConf, reservationManager, cat, promoManager)
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	//nolint:contextcheck
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*4) //nolint:gomnd
		defer cancel()

		if err := srv.Srv().Shutdown(ctx); err != nil {
			l.LogErrorf("Failed to stop http server: %v", err.Error())
		}
	}()

	l.LogInfo("Application is running on %v:%v...", webConf.Host, webConf.Port)

	if err := srv.Srv().ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		l.LogErrorf("Failed to run http server: %v", err.Error())

		cancel()
	}

	l.LogInfo("Application stopped gracefully")

	return nil
}
