package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	cfg, info, err := LoadFile(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if info.PortSpecified {
		t.Fatalf("port should not be marked as specified")
	}
	if cfg.Database.Driver != "sqlite" || cfg.Import.MaxUploadMB != 20 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFile_Overrides(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 8088

[import]
max_upload_mb = 5
decimal_comma = true

[domains.ethics]
sheet_name = "จริยธรรม 2569"
header_scan_rows = 12
`)
	cfg, info, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !info.PortSpecified || cfg.Server.Port != 8088 {
		t.Fatalf("port not loaded: %+v", cfg.Server)
	}
	if cfg.MaxUploadBytes() != 5<<20 || !cfg.Import.DecimalComma {
		t.Fatalf("import config not loaded: %+v", cfg.Import)
	}

	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	d, ok := reg.Lookup("ethics")
	if !ok {
		t.Fatalf("ethics missing")
	}
	if d.SheetName != "จริยธรรม 2569" || d.HeaderScanRows != 12 {
		t.Fatalf("override not applied: %q %d", d.SheetName, d.HeaderScanRows)
	}
}

func TestLoadFile_Validation(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "postgres"
`)
	if _, _, err := LoadFile(path); err == nil {
		t.Fatalf("postgres without dsn must fail")
	}

	path = writeConfig(t, `
[database]
driver = "mysql"
`)
	if _, _, err := LoadFile(path); err == nil {
		t.Fatalf("unknown driver must fail")
	}
}

func TestLoadFile_EnvWins(t *testing.T) {
	t.Setenv("RTC_DATABASE_DRIVER", "postgres")
	t.Setenv("RTC_DATABASE_DSN", "postgres://rtc@localhost/rtc")

	cfg, _, err := LoadFile(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.DSN != "postgres://rtc@localhost/rtc" {
		t.Fatalf("env not applied: %+v", cfg.Database)
	}
}

func TestSQLitePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.DataDir = t.TempDir()
	if got := SQLitePath(cfg); got != filepath.Join(cfg.Data.DataDir, "rtc.db") {
		t.Fatalf("sqlite path=%s", got)
	}
	cfg.Database.DSN = "/tmp/other.db"
	if got := SQLitePath(cfg); got != "/tmp/other.db" {
		t.Fatalf("dsn ignored: %s", got)
	}
}
