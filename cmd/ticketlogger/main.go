// ticketlogger es el CLI de administración del catálogo y las cuentas:
// opera directamente contra la base de datos vía los servicios de
// dominio, sin pasar por ninguna API intermedia.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/sdroman/ticketlogger/internal/cache"
	memcache "github.com/sdroman/ticketlogger/internal/cache/memory"
	redcache "github.com/sdroman/ticketlogger/internal/cache/redis"
	"github.com/sdroman/ticketlogger/internal/config"
	"github.com/sdroman/ticketlogger/internal/domain/repository"
	"github.com/sdroman/ticketlogger/internal/metrics"
	"github.com/sdroman/ticketlogger/internal/observability/logger"
	"github.com/sdroman/ticketlogger/internal/service"
	"github.com/sdroman/ticketlogger/internal/store/pg"
	"github.com/sdroman/ticketlogger/internal/uploads"
)

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// app agrupa los servicios ya cableados para los subcomandos.
type app struct {
	regions   *service.RegionService
	provinces *service.ProvinceService
	users     *service.UserService
	profiles  *service.ProfileService
	roles     repository.RoleRepository
	store     *pg.Store
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "ticketlogger"})
	_ = metrics.Register(prometheus.DefaultRegisterer)

	store, err := pg.New(ctx, cfg.Storage.DSN, pg.Tuning{
		MaxConns:        cfg.Storage.Postgres.MaxConns,
		MinConns:        cfg.Storage.Postgres.MinConns,
		ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	var c cache.Cache
	switch cfg.Cache.Kind {
	case "redis":
		c = redcache.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB, cfg.Cache.Redis.Prefix)
	case "memory":
		c = memcache.New(cfg.MemoryTTL())
	default:
		c = cache.Nop{}
	}

	files := uploads.New(cfg.Uploads.Root)

	return &app{
		regions:   service.NewRegionService(store.Regions(), c, cfg.MemoryTTL()),
		provinces: service.NewProvinceService(store.Provinces()),
		users:     service.NewUserService(store.Users(), store.Roles()),
		profiles:  service.NewProfileService(store.Profiles(), store.Users(), files),
		roles:     store.Roles(),
		store:     store,
	}, nil
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
	_ = logger.Sync()
}

// printJSON imprime cualquier resultado con indentado estable.
func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

// pageFlags registra los flags de paginación comunes a los listados.
func pageFlags(cmd *cobra.Command, req *repository.PageRequest) {
	cmd.Flags().IntVar(&req.Page, "page", 0, "Página (desde 0)")
	cmd.Flags().IntVar(&req.Size, "size", repository.DefaultPageSize, "Tamaño de página")
	cmd.Flags().StringVar(&req.SortField, "sort", "", "Campo de ordenación")
	cmd.Flags().StringVar(&req.SortDir, "dir", repository.SortAsc, "Dirección: asc|desc")
}

func main() {
	configPath := envOr("TL_CONFIG", "configs/config.example.yaml")

	var a *app
	root := &cobra.Command{
		Use:           "ticketlogger",
		Short:         "Administración de catálogo geográfico, cuentas y perfiles",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp(cmd.Context(), configPath)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil {
				a.close()
			}
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", configPath, "Ruta del config YAML (env TL_CONFIG)")

	root.AddCommand(
		regionsCmd(&a),
		provincesCmd(&a),
		usersCmd(&a),
		rolesCmd(&a),
		profileCmd(&a),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
