package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port        int
	DataPath    string
	BackupDir   string
	AuditDB     string
	PlatformURL string
}

// ParseFlags validates flags and sets defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickly-elect", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.PlatformURL, "u", "", "Chat platform callback base URL")

	// Storage paths
	fs.StringVar(&cfg.DataPath, "f", "", "Data file path base (\".json\" is appended)")
	fs.StringVar(&cfg.BackupDir, "b", "", "Backup directory")
	fs.StringVar(&cfg.AuditDB, "a", "", "Audit log SQLite path")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3319 // default
		}
	}

	if cfg.PlatformURL == "" {
		cfg.PlatformURL = os.Getenv("PLATFORM_URL")
	}
	if cfg.PlatformURL == "" {
		return Config{}, errors.New("platform callback URL required (use -u or PLATFORM_URL env)")
	}

	if cfg.DataPath == "" {
		cfg.DataPath = os.Getenv("DATA_PATH")
		if cfg.DataPath == "" {
			cfg.DataPath = "elections"
		}
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = os.Getenv("BACKUP_DIR")
		if cfg.BackupDir == "" {
			cfg.BackupDir = "bku"
		}
	}
	if cfg.AuditDB == "" {
		cfg.AuditDB = os.Getenv("AUDIT_DB")
		if cfg.AuditDB == "" {
			cfg.AuditDB = "audit.db"
		}
	}

	return cfg, nil
}
