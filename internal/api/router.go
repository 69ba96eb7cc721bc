package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"manufacturing-backend/internal/device"
	"manufacturing-backend/internal/integrity"
	"manufacturing-backend/internal/model"
	"manufacturing-backend/internal/mw"
	"manufacturing-backend/internal/pkg/logger"
	"manufacturing-backend/internal/store"
)

// Options configures the router. Zero values disable rate limiting and caching.
type Options struct {
	BasePath string
	Version  string

	RateLimit float64
	RateBurst int
	CacheTTL  time.Duration

	CORSOrigins []string

	// Location is reported in the demo timestamp. Defaults to UTC.
	Location *time.Location

	// Registry receives HTTP and device metrics and backs /metrics.
	// A private registry is created when nil.
	Registry *prometheus.Registry
}

func (o *Options) setDefaults() {
	if o.BasePath == "" {
		o.BasePath = "/api/v1"
	}
	if o.Version == "" {
		o.Version = "1.0"
	}
	if len(o.CORSOrigins) == 0 {
		o.CORSOrigins = []string{"*"}
	}
	if o.Registry == nil {
		o.Registry = prometheus.NewRegistry()
	}
}

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, log *zap.Logger, opts Options) (*gin.Engine, error) {
	opts.setDefaults()
	log = logger.OrNop(log)

	httpMetrics, err := mw.NewHTTPMetrics(opts.Registry)
	if err != nil {
		return nil, err
	}
	facade, err := device.NewFacade(s, log, opts.Registry)
	if err != nil {
		return nil, err
	}
	guard := integrity.NewGuard(s, log)
	h := NewHandler(s, guard, facade, log, opts)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		mw.RequestID(),
		mw.AccessLog(log),
		httpMetrics.Middleware(),
		cors.New(corsConfig(opts.CORSOrigins)),
		mw.ErrorHandler(log),
	)

	// The limiter and cache are shared by every group they guard.
	var guarded []gin.HandlerFunc
	if opts.RateLimit > 0 {
		guarded = append(guarded, mw.RateLimiter(rate.Limit(opts.RateLimit), opts.RateBurst))
	}
	if opts.CacheTTL > 0 {
		guarded = append(guarded, mw.Cache(cache.New(opts.CacheTTL, 2*opts.CacheTTL), opts.CacheTTL))
	}

	api := r.Group(opts.BasePath, guarded...)
	{
		crud[model.Contact]{repo: s.Contacts(), remove: guard.DeleteContact}.register(api, "/contacts")
		crud[model.Wire]{repo: s.Wires(), remove: guard.DeleteWire}.register(api, "/wires")
		crud[model.Process]{repo: s.Processes(), remove: guard.DeleteProcess}.register(api, "/processes")
		crud[model.Job]{repo: s.Jobs()}.register(api, "/jobs")
		crud[model.Setup]{repo: s.Setups()}.register(api, "/setups")
		crud[model.Command]{repo: s.Commands()}.register(api, "/commands")

		api.GET("/recipes", h.GetRecipes)
		api.GET("/recipes/:id", h.GetRecipe)
		api.POST("/recipes", h.CreateRecipe)
		api.PUT("/recipes/:id", h.UpdateRecipe)
		api.DELETE("/recipes/:id", h.DeleteRecipe)

		api.POST("/device/commands", h.ExecuteDeviceCommand)
		api.GET("/docs", h.GetDocs)
	}

	r.GET("/api/demo", append(guarded, h.GetDemo)...)
	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	log.Info("Router ready",
		zap.String("base_path", opts.BasePath),
		zap.Float64("rate_limit", opts.RateLimit),
		zap.Duration("cache_ttl", opts.CacheTTL),
	)
	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", mw.RequestIDHeader},
		ExposeHeaders: []string{mw.RequestIDHeader, mw.CacheHeader},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
