package config

import (
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string `json:"port"`
	DBURL       string `json:"dbUrl"`
	AutoMigrate bool   `json:"autoMigrate"`

	ReferenceDir string `json:"referenceDir"`
	DBLPath      string `json:"dblPath"`

	LogLevel string `json:"logLevel"`
	Seed     bool   `json:"seed"`
}

func def() Config {
	return Config{
		Port:        "8080",
		DBURL:       "",
		AutoMigrate: false,

		ReferenceDir: "reference",
		DBLPath:      "",

		LogLevel: "info",
		Seed:     false,
	}
}

func loadJSON(path string) (Config, error) {
	c := def()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getenvBool(k string, fallback bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		v = strings.TrimSpace(strings.ToLower(v))
		if v == "1" || v == "true" || v == "yes" {
			return true
		}
		if v == "0" || v == "false" || v == "no" {
			return false
		}
	}
	return fallback
}

func applyEnv(cfg Config) Config {
	cfg.Port = getenv("PARTSDB_PORT", cfg.Port)
	cfg.DBURL = getenv("PARTSDB_DB_URL", cfg.DBURL)
	cfg.AutoMigrate = getenvBool("PARTSDB_AUTO_MIGRATE", cfg.AutoMigrate)
	cfg.ReferenceDir = getenv("PARTSDB_REFERENCE_DIR", cfg.ReferenceDir)
	cfg.DBLPath = getenv("PARTSDB_DBL_PATH", cfg.DBLPath)
	cfg.LogLevel = getenv("PARTSDB_LOG_LEVEL", cfg.LogLevel)
	cfg.Seed = getenvBool("PARTSDB_SEED", cfg.Seed)
	return cfg
}

// LoadWithPath reads JSON from the given path (when it exists), then applies
// ENV and flag overrides.
func LoadWithPath(jsonPath string) Config {
	cfg := def()

	if st, err := os.Stat(jsonPath); err == nil && !st.IsDir() {
		if c2, err := loadJSON(jsonPath); err == nil {
			cfg = c2
		}
	}

	cfg = applyEnv(cfg)

	configPath := flag.String("config", jsonPath, "Path to config JSON")
	port := flag.String("port", cfg.Port, "HTTP port")
	db := flag.String("db", cfg.DBURL, "Postgres URL (empty = in-memory)")
	auto := flag.String("auto-migrate", strconv.FormatBool(cfg.AutoMigrate), "Apply part-family DDL at startup (true/false)")
	refs := flag.String("reference", cfg.ReferenceDir, "Path to reference catalog directory")
	dbl := flag.String("dbl", cfg.DBLPath, "Write the .kicad_dbl descriptor to this path at startup")
	level := flag.String("log-level", cfg.LogLevel, "Log level (trace/debug/info/warn/error)")
	seed := flag.String("seed", strconv.FormatBool(cfg.Seed), "Load demo data into the in-memory store (true/false)")

	flag.Parse()

	// a different config passed via flag: re-read with the new path
	if *configPath != jsonPath {
		return LoadWithPath(*configPath)
	}

	cfg.Port = strings.TrimSpace(*port)
	cfg.DBURL = strings.TrimSpace(*db)
	cfg.AutoMigrate = boolFlag(*auto)
	cfg.ReferenceDir = strings.TrimSpace(*refs)
	cfg.DBLPath = strings.TrimSpace(*dbl)
	cfg.LogLevel = strings.TrimSpace(*level)
	cfg.Seed = boolFlag(*seed)

	return cfg
}

func boolFlag(v string) bool {
	v = strings.TrimSpace(v)
	return strings.EqualFold(v, "true") || v == "1" || strings.EqualFold(v, "yes")
}
