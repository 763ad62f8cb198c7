package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/sdroman/ticketlogger/internal/config"
	"github.com/sdroman/ticketlogger/internal/domain/repository"
	"github.com/sdroman/ticketlogger/internal/security/password"
	"github.com/sdroman/ticketlogger/internal/store/pg"
)

func strEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Dataset mínimo de catálogo para desarrollo.
var seedRegions = []struct {
	code, name string
	provinces  []struct{ code, name string }
}{
	{"AN", "Andalucía", []struct{ code, name string }{
		{"SE", "Sevilla"}, {"MA", "Málaga"}, {"GR", "Granada"},
	}},
	{"CT", "Cataluña", []struct{ code, name string }{
		{"BA", "Barcelona"}, {"GI", "Girona"},
	}},
	{"GA", "Galicia", []struct{ code, name string }{
		{"CO", "A Coruña"}, {"PO", "Pontevedra"},
	}},
	{"MD", "Comunidad de Madrid", []struct{ code, name string }{
		{"MD", "Madrid"},
	}},
}

var seedRoles = []string{"ADMIN", "USER"}

func main() {
	// .env (opcional) - prioridad .env.dev > .env
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.dev")

	cfg, err := config.Load(strEnv("TL_CONFIG", "configs/config.example.yaml"))
	if err != nil {
		log.Fatalf("config load: %v", err)
	}
	dsn := strEnv("TL_STORAGE_DSN", cfg.Storage.DSN)
	if dsn == "" {
		log.Fatal("no DSN (TL_STORAGE_DSN or config file)")
	}

	adminEmail := strEnv("SEED_ADMIN_EMAIL", "admin@local.test")
	adminPass := strEnv("SEED_ADMIN_PASSWORD", "SuperS3creta!")

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("pgxpool: %v", err)
	}
	defer pool.Close()

	// 1) Roles (upsert por nombre)
	roleIDs := map[string]int64{}
	for _, name := range seedRoles {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO roles (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, name).Scan(&id)
		if err != nil {
			log.Fatalf("upsert role %s: %v", name, err)
		}
		roleIDs[name] = id
	}

	// 2) Catálogo geográfico (idempotente: ya-existe no es error)
	regionCount, provinceCount := 0, 0
	for _, r := range seedRegions {
		var regionID int64
		err := pool.QueryRow(ctx, `
			SELECT id FROM regions WHERE UPPER(code) = UPPER($1)
		`, r.code).Scan(&regionID)
		if err != nil {
			if err := pool.QueryRow(ctx, `
				INSERT INTO regions (code, name) VALUES ($1, $2) RETURNING id
			`, r.code, r.name).Scan(&regionID); err != nil {
				log.Fatalf("insert region %s: %v", r.code, err)
			}
			regionCount++
		}
		for _, p := range r.provinces {
			tag, err := pool.Exec(ctx, `
				INSERT INTO provinces (code, name, region_id)
				SELECT $1, $2, $3
				WHERE NOT EXISTS (SELECT 1 FROM provinces WHERE UPPER(code) = UPPER($1))
			`, p.code, p.name, regionID)
			if err != nil {
				log.Fatalf("insert province %s: %v", p.code, err)
			}
			provinceCount += int(tag.RowsAffected())
		}
	}

	// 3) Admin con hash PHC y ventana de caducidad derivada
	phc, err := password.Hash(password.Default, adminPass)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	admin := &repository.User{
		Email:         adminEmail,
		PasswordHash:  phc,
		Active:        true,
		EmailVerified: true,
	}
	admin.AccountNonLocked = true
	admin.ApplyPasswordDefaults(time.Now().UTC())

	users := pg.NewFromPool(pool).Users()
	exists, err := users.ExistsByEmail(ctx, adminEmail)
	if err != nil {
		log.Fatalf("check admin: %v", err)
	}
	created := false
	if !exists {
		id, err := users.Insert(ctx, admin)
		if err != nil {
			log.Fatalf("insert admin: %v", err)
		}
		if err := users.ReplaceRoles(ctx, id, []int64{roleIDs["ADMIN"]}); err != nil {
			log.Fatalf("assign admin role: %v", err)
		}
		created = true
	}

	fmt.Println()
	fmt.Println("Seed listo ✅")
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Roles:      %v\n", seedRoles)
	fmt.Printf("Regiones:   %d nuevas\n", regionCount)
	fmt.Printf("Provincias: %d nuevas\n", provinceCount)
	if created {
		fmt.Printf("Admin:      %s / %s\n", adminEmail, adminPass)
	} else {
		fmt.Printf("Admin:      %s (ya existía, sin cambios)\n", adminEmail)
	}
	fmt.Println("--------------------------------------------------")
}
