package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fiscalpy/consola/internal/api"
	"github.com/fiscalpy/consola/internal/config"
	"github.com/fiscalpy/consola/internal/console"
	"github.com/fiscalpy/consola/internal/nav"
	"github.com/fiscalpy/consola/internal/rbac"
	"github.com/fiscalpy/consola/internal/scope"
	"github.com/fiscalpy/consola/internal/session"
	"github.com/fiscalpy/consola/internal/state"
	"github.com/fiscalpy/consola/internal/status"
	"github.com/fiscalpy/consola/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("consola terminada con error")
	}
}

func run() error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx := context.Background()

	var kv storage.KV
	if cfg.RedisURL != "" {
		redisKV, err := storage.NewRedisKV(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer redisKV.Close()
		kv = redisKV
	} else {
		fileKV, err := storage.NewFileKV(cfg.StateDir)
		if err != nil {
			return fmt.Errorf("estado local: %w", err)
		}
		kv = fileKV
	}

	estado := state.NewContainer()
	store := session.NewStore(nil, kv, estado, log.Logger)

	cliente, err := api.New(api.Config{
		BaseURL:           cfg.APIBaseURL,
		Timeout:           cfg.RequestTimeout,
		Tokens:            store,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	})
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	store.SetBackend(cliente)

	sesion, err := store.Restore(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("restauración de sesión incompleta")
	}
	log.Info().Str("estado", string(sesion.Status)).Msg("sesión restaurada")

	notifier := console.LogNotifier{Logger: log.Logger}
	resolver := scope.NewResolver(estado)

	tenantsCtrl := console.NewTenantsController(cliente, estado, resolver, notifier)
	jobsCtrl := console.NewJobsController(cliente, estado, notifier, cfg.Polling.Jobs, log.Logger)
	panelCtrl := console.NewDashboardController(cliente, estado, notifier, cfg.Polling.Dashboard, log.Logger)
	saludCtrl := console.NewHealthController(cliente, cfg.Polling.Health, log.Logger)
	planesCtrl := console.NewPlanesController(cliente, estado, notifier)

	colapsos, err := nav.CargarColapsos(ctx, kv)
	if err != nil {
		return fmt.Errorf("nav: %w", err)
	}
	log.Debug().
		Bool("principal", colapsos.Colapsado(nav.GrupoPrincipal)).
		Bool("automatizacion", colapsos.Colapsado(nav.GrupoAutomatizacion)).
		Bool("administracion", colapsos.Colapsado(nav.GrupoAdministracion)).
		Msg("estado de menú restaurado")

	if sesion.Identity != nil {
		visibles := nav.Visibles(nav.Definicion(), sesion.Identity.Rol.Nombre)
		log.Info().Int("items", len(visibles)).Msg("menú calculado")

		if _, err := tenantsCtrl.Listar(ctx); err == nil {
			flags := rbac.FlagsFor(sesion.Identity)
			log.Info().Bool("super_admin", flags.SuperAdmin).Msg("scope establecido")

			if flags.SuperAdmin {
				if planes, err := planesCtrl.Planes(ctx); err == nil {
					log.Info().Int("planes", len(planes)).Msg("catálogo de billing cargado")
				}
			}
		}
	}

	jobsCtrl.Montar(ctx)
	panelCtrl.Montar(ctx)
	saludCtrl.Montar(ctx)
	defer jobsCtrl.Desmontar()
	defer panelCtrl.Desmontar()
	defer saludCtrl.Desmontar()

	var srv *http.Server
	errCh := make(chan error, 1)
	if cfg.StatusPort > 0 {
		handler := status.NewRouter(status.Deps{
			Estado: estado,
			Panel:  panelCtrl,
			Jobs:   jobsCtrl,
			Salud:  saludCtrl,
		})
		srv = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.StatusPort),
			Handler: handler,
		}
		go func() {
			log.Info().Msgf("estado de consola en :%d", cfg.StatusPort)
			errCh <- srv.ListenAndServe()
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("cerrando...")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
	return nil
}
