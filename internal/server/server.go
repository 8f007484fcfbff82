// Package server exposes aggregation, manual entry and coin lookups over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postMint/internal/aggregate"
	"postMint/internal/chain"
	"postMint/internal/coins"
	"postMint/internal/metrics"
	"postMint/internal/model"
)

// CoinAPI is the subset of the coins client the server needs.
type CoinAPI interface {
	Explore(ctx context.Context, kind coins.ListKind, count int, after string) (coins.Page, error)
	Coin(ctx context.Context, address string, chainID int64) (model.RawCoin, error)
}

type Config struct {
	ChainID      int64
	ExploreCount int
}

type Server struct {
	cfg        Config
	aggregator *aggregate.Aggregator
	api        CoinAPI
	metrics    *metrics.Metrics
	logger     *zap.Logger

	chain  chain.Caller
	tokens *chain.TokenMetaCache
}

func New(cfg Config, aggregator *aggregate.Aggregator, api CoinAPI, m *metrics.Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ExploreCount <= 0 {
		cfg.ExploreCount = coins.DefaultCount
	}
	return &Server{
		cfg:        cfg,
		aggregator: aggregator,
		api:        api,
		metrics:    m,
		logger:     logger.Named("server"),
	}
}

// WithChain enables on-chain metadata for coin lookups (?onchain=1).
func (s *Server) WithChain(caller chain.Caller, tokens *chain.TokenMetaCache) *Server {
	if tokens == nil {
		tokens = chain.NewTokenMetaCache()
	}
	s.chain = caller
	s.tokens = tokens
	return s
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))
	router.Use(requestLogger(s.logger))
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	v1 := router.Group("/api/v1")
	v1.GET("/creators/:address/coins", s.getCreatorCoins)
	v1.POST("/creators/:address/coins", s.addManualCoin)
	v1.GET("/explore/:source", s.explore)
	v1.GET("/coins/:address", s.getCoin)

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func errorJSON(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func parseCount(c *gin.Context, fallback int) int {
	raw := c.Query("count")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
