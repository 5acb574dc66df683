package deps

import (
	"time"

	"github.com/MrSnakeDoc/navsite/internal/domain"
	"github.com/MrSnakeDoc/navsite/internal/icons"
	"github.com/MrSnakeDoc/navsite/internal/index"
	"github.com/MrSnakeDoc/navsite/internal/logger"
	redisstore "github.com/MrSnakeDoc/navsite/internal/store/redis"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time      // for testing, defaults to time.Now
	AllowedHosts  []string              // Host headers allowed to access admin endpoints
	AllowedCIDRS  []string              // IPs allowed to access infra/reload endpoints
	TrustProxy    bool                  // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigins   []string              // empty = any origin for read-only API
	SitesFile     string                // Path to sites.json
	Store         *redisstore.Store     // nil when Redis is disabled or unreachable
	MemoryIndex   *index.MemoryIndex    // Served document and click counters
	Engines       []domain.SearchEngine // Search box engines
	Icons         *icons.Manifest       // Static asset lookup for icon display
	StaticDir     string                // Built navigation page (index.html), optional
	AssetDir      string                // Served under /asset, optional
	CacheTTL      time.Duration         // TTL of cached jump resolutions
	RateBurst     int                   // per-IP burst on /go and /search
	RatePerMin    int                   // per-IP refill on /go and /search
	ReloadTrigger chan struct{}         // Channel to trigger manual document reload
}
