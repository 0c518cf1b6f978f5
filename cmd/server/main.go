package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"partsdb/internal/api"
	"partsdb/internal/config"
	"partsdb/internal/kicad"
	"partsdb/internal/parts"
	"partsdb/internal/pg"
	"partsdb/internal/reference"
)

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}

func main() {
	_ = godotenv.Load()
	cfg := config.LoadWithPath("partsdb.json")
	log := newLogger(cfg.LogLevel)

	// 1. Part-family definitions: register once, synthesize once. Definition
	// errors are fatal here, before any request traffic is served.
	registry, err := parts.BuildRegistry()
	if err != nil {
		log.Fatal().Err(err).Msg("building table registry")
	}
	tables, err := registry.SynthesizeAll()
	if err != nil {
		log.Fatal().Err(err).Msg("schema synthesis")
	}
	log.Info().Int("tables", len(tables)).Msg("part-family schemas synthesized")

	// 2. The .kicad_dbl descriptor for the KiCad client.
	dbl, err := kicad.GenerateDBL("Parts Database", "Company parts database",
		kicad.DBLSource{Type: "odbc", TimeoutSeconds: 2, ConnectionString: cfg.DBURL},
		registry.Definitions())
	if err != nil {
		log.Fatal().Err(err).Msg("generating .kicad_dbl")
	}
	if cfg.DBLPath != "" {
		if err := os.WriteFile(cfg.DBLPath, dbl, 0o644); err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBLPath).Msg("writing .kicad_dbl")
		}
		log.Info().Str("path", cfg.DBLPath).Msg(".kicad_dbl written")
	}

	// 3. Reference catalogs (optional).
	catalog, err := reference.LoadCatalog(cfg.ReferenceDir)
	if err != nil {
		log.Warn().Err(err).Str("dir", cfg.ReferenceDir).Msg("reference catalogs unavailable")
		catalog = map[string]reference.Directory{}
	} else {
		log.Info().Int("directories", len(catalog)).Msg("reference catalogs loaded")
	}

	// 4. Storage: Postgres when configured, in-memory otherwise.
	var store parts.Store
	if cfg.DBURL != "" {
		db, err := pg.Open(cfg.DBURL)
		if err != nil {
			log.Fatal().Err(err).Msg("opening database")
		}
		if err := pg.ApplyDDL(db, pg.CoreDDL(), log); err != nil {
			log.Fatal().Err(err).Msg("applying record-store DDL")
		}
		if cfg.AutoMigrate {
			ddl, err := pg.RenderDDL(tables)
			if err != nil {
				log.Fatal().Err(err).Msg("rendering part-family DDL")
			}
			if err := pg.ApplyDDL(db, ddl, log); err != nil {
				log.Fatal().Err(err).Msg("applying part-family DDL")
			}
			log.Info().Msg("part-family tables migrated")
		}
		store = pg.NewStore(db)
	} else {
		mem := api.NewMemoryStore()
		if cfg.Seed {
			if err := mem.Seed(context.Background()); err != nil {
				log.Fatal().Err(err).Msg("seeding demo data")
			}
			log.Info().Msg("demo data seeded")
		}
		store = mem
		log.Warn().Msg("no database URL configured, using in-memory store")
	}

	log.Info().Str("port", cfg.Port).Msg("starting partsdb server")
	if err := api.RunServer(":"+cfg.Port, store, catalog, dbl, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
