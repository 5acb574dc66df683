package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the settings of `navsite serve`. Import settings are CLI
// flags (see cmd/navsite) that read the same NAV_ variables.
type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SitesFile      string        // path to sites.json
	EnginesFile    string        // path to engines.yaml (optional, empty = built-in engines)
	StaticDir      string        // built navigation page (optional, empty = API only)
	AssetDir       string        // icons and images served under /asset (optional)
	ReloadInterval time.Duration // interval to reload sites.json (default: 5m)
	PruneInterval  time.Duration // interval to prune counters of removed sites (default: 24h)
	PruneGrace     time.Duration // how long a removed site keeps its counter (default: 30d)
	CacheTTL       time.Duration // TTL of cached jump resolutions (default: 24h)
	RateBurst      int           // per-IP burst on /go and /search
	RatePerMin     int           // per-IP refill per minute on /go and /search

	// Redis (optional, empty address = counters kept in memory only)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict /reload to specific Host headers
	AllowedCIDRS []string // optional, restrict /readyz, /infra and /reload to specific IPs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins  []string // optional, origins allowed to read /api (empty = any)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("NAV_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("NAV_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("NAV_LOG_LEVEL", "info"),
		PrettyLog: mustBool("NAV_PRETTY_LOG", true),

		// Document
		SitesFile:      getenv("NAV_SITES_FILE", "src/config/sites.json"),
		EnginesFile:    getenv("NAV_ENGINES_FILE", ""),
		StaticDir:      getenv("NAV_STATIC_DIR", ""),
		AssetDir:       getenv("NAV_ASSET_DIR", ""),
		ReloadInterval: mustDuration("NAV_RELOAD_INTERVAL", 5*time.Minute),
		PruneInterval:  mustDuration("NAV_PRUNE_INTERVAL", 24*time.Hour),
		PruneGrace:     mustDuration("NAV_PRUNE_GRACE", 30*24*time.Hour),
		CacheTTL:       mustDuration("NAV_CACHE_TTL", 24*time.Hour),
		RateBurst:      getenvInt("NAV_RATE_BURST", 30),
		RatePerMin:     getenvInt("NAV_RATE_PER_MIN", 120),

		// Redis settings
		RedisAddr:             getenv("NAV_REDIS_ADDR", ""),
		RedisUser:             getenv("NAV_REDIS_USERNAME", ""),
		RedisPasswordRequired: mustBool("NAV_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("NAV_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("NAV_REDIS_DB", 0),
		RedisDT:               mustDuration("NAV_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("NAV_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("NAV_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("NAV_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("NAV_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("NAV_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("NAV_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("NAV_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("NAV_REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("NAV_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("NAV_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("NAV_TRUST_PROXY", false),
		CORSOrigins:  splitAndTrim(getenv("NAV_CORS_ORIGINS", "")),
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// Validate checks combinations that env parsing alone cannot catch.
func (c *Config) Validate() error {
	if c.SitesFile == "" {
		return fmt.Errorf("NAV_SITES_FILE must not be empty")
	}
	if c.ReloadInterval <= 0 || c.PruneInterval <= 0 {
		return fmt.Errorf("reload and prune intervals must be > 0")
	}
	if c.RedisEnabled() && c.RedisPasswordRequired && c.RedisPassword == "" {
		return fmt.Errorf("NAV_REDIS_PASSWORD is required when NAV_REDIS_PASSWORD_REQUIRED=true")
	}
	return nil
}

// RedisEnabled reports whether a Redis address is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
