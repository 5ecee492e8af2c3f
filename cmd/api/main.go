package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"news-portal/internal/common/pagination"
	"news-portal/internal/config"
	pgRepo "news-portal/internal/infra/adapter/persistence/postgres"
	"news-portal/internal/infra/db"
	"news-portal/internal/infra/notifier"
	"news-portal/internal/observability/logging"
	"news-portal/internal/observability/tracing"
	"news-portal/internal/resilience/circuitbreaker"

	activityUC "news-portal/internal/usecase/activity"
	artUC "news-portal/internal/usecase/article"
	cmtUC "news-portal/internal/usecase/comment"
	"news-portal/internal/usecase/notify"
	reactionUC "news-portal/internal/usecase/reaction"
	userUC "news-portal/internal/usecase/user"

	hhttp "news-portal/internal/handler/http"
	harticle "news-portal/internal/handler/http/article"
	hauth "news-portal/internal/handler/http/auth"
	hcomment "news-portal/internal/handler/http/comment"
	hdashboard "news-portal/internal/handler/http/dashboard"
	hprofile "news-portal/internal/handler/http/profile"
	"news-portal/internal/handler/http/requestid"
	"news-portal/internal/handler/http/respond"
	authservice "news-portal/internal/service/auth"

	_ "news-portal/docs" // swagger docs
)

// @title           News Portal API
// @version         1.0
// @description     記事の投稿・承認・公開を管理するニュースポータルの REST API
// @description     記事のモデレーション、コメント、リアクション、公開ダッシュボードを提供します。

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証。ヘッダーに "Bearer {token}" 形式で指定してください。

// authLimiterIdle is how long an idle client stays in the auth rate limiter.
const authLimiterIdle = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := logging.New(cfg.LogFormat, cfg.SlogLevel())
	slog.SetDefault(logger)

	if err := config.ValidateJWTSecret(cfg.JWTSecret); err != nil {
		logger.Error("JWT secret validation failed", slog.Any("error", err))
		os.Exit(1)
	}
	respond.SetExposeInternalErrors(cfg.ExposeInternalErrors)
	if cfg.ExposeInternalErrors {
		logger.Warn("EXPOSE_INTERNAL_ERRORS is enabled - internal error details are returned to clients")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := initTracing(logger, cfg)
	defer shutdownTracing()

	database := initDatabase(ctx, logger, cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	go db.ReportPoolStats(ctx, database, 30*time.Second)

	security := loadSecurityConfig(logger, cfg)
	components := setupServer(logger, cfg, database, security)

	go hhttp.StartRateLimitCleanup(ctx, components.AuthLimiter, hhttp.DefaultCleanupInterval, authLimiterIdle)

	runServer(ctx, logger, cfg, components.Handler)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := components.Notifications.Shutdown(shutdownCtx); err != nil {
		logger.Warn("notification shutdown incomplete", slog.Any("error", err))
	}
}

// initNotifications builds the moderation notification dispatcher. Channels
// without a webhook URL stay registered but disabled.
func initNotifications(logger *slog.Logger, cfg *config.AppConfig) *notify.Service {
	channels := []notify.Channel{
		notifier.NewSlackNotifier(notifier.SlackConfig{
			WebhookURL: cfg.Notify.SlackWebhookURL,
			Timeout:    cfg.Notify.Timeout,
		}),
		notifier.NewDiscordNotifier(notifier.DiscordConfig{
			WebhookURL: cfg.Notify.DiscordWebhookURL,
			Timeout:    cfg.Notify.Timeout,
		}),
	}
	for _, ch := range channels {
		logger.Info("notification channel configured",
			slog.String("channel", ch.Name()),
			slog.Bool("enabled", ch.IsEnabled()))
	}
	return notify.NewService(channels, cfg.Notify.MaxConcurrent)
}

// initTracing installs the OpenTelemetry provider when TRACING_ENABLED is set.
// The returned function flushes it.
func initTracing(logger *slog.Logger, cfg *config.AppConfig) func() {
	if !cfg.TracingEnabled {
		return func() {}
	}
	shutdown := tracing.InitProvider("news-portal-api", cfg.Version)
	logger.Info("tracing enabled")
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}
}

// initDatabase opens the connection pool and runs migrations.
func initDatabase(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) *sql.DB {
	poolCfg, err := db.LoadConnectionConfig()
	if err != nil {
		logger.Error("invalid database pool configuration", slog.Any("error", err))
		os.Exit(1)
	}
	database, err := db.Open(ctx, cfg.DatabaseURL, poolCfg)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}
	if err := db.MigrateUp(ctx, database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// loadSecurityConfig reads the YAML security policy. A missing file falls back
// to built-in defaults; an invalid one stops startup.
func loadSecurityConfig(logger *slog.Logger, cfg *config.AppConfig) *config.SecurityConfig {
	security, err := config.LoadSecurityConfig(cfg.SecurityConfigPath)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("security config not found, using defaults", slog.String("path", cfg.SecurityConfigPath))
		return nil
	}
	if err != nil {
		logger.Error("failed to load security config", slog.String("path", cfg.SecurityConfigPath), slog.Any("error", err))
		os.Exit(1)
	}
	return security
}

// ServerComponents holds the handler and the background-maintained pieces it uses.
type ServerComponents struct {
	Handler       http.Handler
	AuthLimiter   *hhttp.RateLimiter
	Notifications *notify.Service
}

// setupServer wires repositories, services, routes and middleware.
func setupServer(logger *slog.Logger, cfg *config.AppConfig, database *sql.DB, security *config.SecurityConfig) *ServerComponents {
	policy := authservice.DefaultPasswordPolicy()
	tokenTTL := cfg.JWTTTL
	var publicEndpoints []string
	if security != nil {
		policy.MinPasswordLength = security.GetMinPasswordLength()
		if weak := security.GetWeakPasswords(); len(weak) > 0 {
			policy.WeakPasswords = weak
		}
		if eps := security.GetPublicEndpoints(); len(eps) > 0 {
			publicEndpoints = eps
		}
		// YAML の expiry_hours は JWT_TTL より優先
		if h := security.GetJWTExpiryHours(); h > 0 {
			tokenTTL = time.Duration(h) * time.Hour
		}
	}
	logger.Info("security policy loaded",
		slog.Int("min_password_length", policy.MinPasswordLength),
		slog.Duration("token_ttl", tokenTTL))

	// リポジトリはサーキットブレーカー経由で DB にアクセスする
	breaker := circuitbreaker.NewDBCircuitBreaker(database)
	userRepo := pgRepo.NewUserRepo(breaker)
	articleRepo := pgRepo.NewArticleRepo(breaker)
	commentRepo := pgRepo.NewCommentRepo(breaker)

	notifications := initNotifications(logger, cfg)

	activitySvc := &activityUC.Service{Repo: pgRepo.NewActivityRepo(breaker), Logger: logger}
	reactionSvc := &reactionUC.Service{Repo: pgRepo.NewReactionRepo(breaker)}
	artSvc := &artUC.Service{
		Repo:      articleRepo,
		Comments:  commentRepo,
		Users:     userRepo,
		Reactions: reactionSvc,
		Activity:  activitySvc,
		Notifier:  notifications,
	}
	cmtSvc := &cmtUC.Service{
		Repo:      commentRepo,
		Articles:  articleRepo,
		Users:     userRepo,
		Reactions: reactionSvc,
		Activity:  activitySvc,
	}
	tokens := authservice.NewTokenService([]byte(cfg.JWTSecret), tokenTTL)
	userSvc := &userUC.Service{
		Repo:     userRepo,
		Tokens:   pgRepo.NewTokenRepo(breaker),
		Issuer:   tokens,
		Hasher:   authservice.Hasher{},
		Policy:   policy,
		Activity: activitySvc,
	}

	// レート制限: signup/login は IP ごとに AUTH_RATE_LIMIT/分
	authLimiter := hhttp.NewRateLimiter("auth", cfg.AuthRateLimit, cfg.AuthRateBurst, cfg.TrustProxyHeaders)
	logger.Info("auth rate limiting enabled",
		slog.Int("per_minute", cfg.AuthRateLimit),
		slog.Int("burst", cfg.AuthRateBurst),
		slog.Bool("trust_proxy_headers", cfg.TrustProxyHeaders))

	paginationCfg := pagination.LoadFromEnv()

	mux := http.NewServeMux()

	// ヘルスチェックエンドポイント（認証不要）
	mux.Handle("GET /health", &hhttp.HealthHandler{
		DB:            database,
		Breaker:       breaker,
		Version:       cfg.Version,
		Limiters:      []*hhttp.RateLimiter{authLimiter},
		Notifications: notifications,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	// Swagger UI（認証不要）
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	hauth.Register(mux, userSvc, authLimiter.Limit)
	harticle.Register(mux, artSvc, paginationCfg)
	hcomment.Register(mux, cmtSvc, paginationCfg)
	hdashboard.Register(mux, artSvc, cmtSvc, paginationCfg)
	hprofile.Register(mux, userSvc)

	authenticator := &hauth.Authenticator{
		Tokens:          tokens,
		Revocations:     userSvc,
		PublicEndpoints: publicEndpoints,
	}

	return &ServerComponents{
		Handler:       applyMiddleware(logger, cfg, authenticator.Authz(mux)),
		AuthLimiter:   authLimiter,
		Notifications: notifications,
	}
}

// applyMiddleware wraps the handler with the middleware chain.
//
// Order (outermost first):
//  1. Request ID (every later layer logs it)
//  2. Tracing (span available to the access log)
//  3. Metrics
//  4. Security headers
//  5. CORS (answers preflight before authentication)
//  6. Input validation (oversized headers and paths)
//  7. Body size limit
//  8. Logging
//  9. Timeout
//  10. Recovery (inside Timeout, which runs the handler on its own goroutine)
//  11. Authentication (applied in setupServer)
func applyMiddleware(logger *slog.Logger, cfg *config.AppConfig, handler http.Handler) http.Handler {
	if len(cfg.CORSAllowedOrigins) > 0 {
		logger.Info("CORS enabled", slog.Any("allowed_origins", cfg.CORSAllowedOrigins))
	}

	h := handler
	h = hhttp.Recover(logger)(h)
	h = hhttp.Timeout(cfg.RequestTimeout)(h)
	h = hhttp.Logging(logger)(h)
	h = hhttp.LimitRequestBody(cfg.BodyLimitBytes)(h)
	h = hhttp.InputValidation(h)
	h = hhttp.CORS(cfg.CORSAllowedOrigins)(h)
	h = hhttp.SecurityHeaders(h)
	h = hhttp.MetricsMiddleware(h)
	h = tracing.Middleware(h)
	h = requestid.Middleware(h)
	return h
}

// runServer serves until ctx is cancelled and then shuts down gracefully.
func runServer(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig, handler http.Handler) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris 対策
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("version", cfg.Version))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	case <-ctx.Done():
	}
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
