package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Interfaces []string
	Addr       string
	PcapPath   string
	DBPath     string
	OIDBPath   string
	APIKeyHash string // bcrypt hash of the API token; empty disables auth
	Debug      bool
}

// Load parses command line flags and environment variables to populate Config.
// Flags take precedence over environment variables.
func Load() *Config {
	cfg := &Config{}

	// Defaults and Environment Variables
	ifaceStr := getEnv("HSMAP_INTERFACE", "wlan0")
	cfg.Addr = getEnv("HSMAP_ADDR", ":8080")
	cfg.DBPath = getEnv("HSMAP_DB", getDefaultDataPath("hsmap.db"))
	cfg.OIDBPath = getEnv("HSMAP_OI_DB", getDefaultDataPath("oi_registry.db"))
	cfg.APIKeyHash = getEnv("HSMAP_API_KEY_HASH", "")
	cfg.Debug = getEnvBool("HSMAP_DEBUG", false)

	// Command Line Flags (Override Env)
	flag.StringVar(&ifaceStr, "i", ifaceStr, "Network interface(s) in monitor mode (comma separated)")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	flag.StringVar(&cfg.PcapPath, "pcap", "", "Read frames from a PCAP file instead of a live interface")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite network database")
	flag.StringVar(&cfg.OIDBPath, "oi-db", cfg.OIDBPath, "Path to SQLite roaming-consortium operator registry")
	flag.StringVar(&cfg.APIKeyHash, "api-key-hash", cfg.APIKeyHash, "bcrypt hash of the API token (empty disables auth)")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable verbose debug logging")

	flag.Parse()

	// Parse interfaces
	cfg.Interfaces = parseInterfaces(ifaceStr)

	return cfg
}

func parseInterfaces(s string) []string {
	var ifaces []string
	if s == "" {
		return ifaces
	}
	parts := strings.Split(s, ",")
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			ifaces = append(ifaces, trimmed)
		}
	}
	return ifaces
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getDefaultDataPath returns a path under ~/.hsmap, creating the directory
// if needed.
func getDefaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get user home directory, using current dir: %v", err)
		return name
	}

	hsmapDir := filepath.Join(home, ".hsmap")
	if err := os.MkdirAll(hsmapDir, 0755); err != nil {
		log.Printf("Warning: Could not create .hsmap directory, using current dir: %v", err)
		return name
	}

	return filepath.Join(hsmapDir, name)
}
