package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/lounge/internal/access/service"
	"github.com/aussiebroadwan/lounge/internal/access/store"
	"github.com/aussiebroadwan/lounge/pkg/httpx"
	"github.com/aussiebroadwan/lounge/pkg/jwtx"
	"github.com/aussiebroadwan/lounge/pkg/slogx"

	_ "github.com/aussiebroadwan/lounge/api/access" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	limiters     httpx.LimiterFactory
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	now          func() time.Time

	store           store.Store
	TokenService    *service.TokenService
	LedgerService   *service.LedgerService
	QueueService    *service.QueueService
	SettingsService *service.SettingsService
	Scheduler       *service.Scheduler
}

// NewRouter creates a router. A nil limiter factory falls back to in-memory
// limiters.
func NewRouter(
	verifier jwtx.Verifier,
	limiters httpx.LimiterFactory,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	if limiters == nil {
		limiters = httpx.MemoryLimiters
	}
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		limiters:     limiters,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		now:          time.Now,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerTokens()
	r.registerMemberships()
	r.registerQueue()
	r.registerJobs()
	r.registerSettings()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Lounge Access Service API
//	@version		0.1.0
//	@description	Premium invitation tokens, premium memberships and the free-tier admission queue.
//	@description
//	@description				Callers authenticate with an HS256 bearer JWT carrying the access:admin or access:member scope.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/lounge
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) admin(h http.Handler, limiter httpx.Limiter) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(jwtx.ScopeAdmin),
		httpx.RateLimitBySubject(limiter),
	)
}

// member routes accept admins too so operators can act on a user's behalf.
func (r *Router) member(h http.Handler, limiter httpx.Limiter) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(jwtx.ScopeMember, jwtx.ScopeAdmin),
		httpx.RateLimitBySubject(limiter),
	)
}

func (r *Router) registerTokens() {
	adminLimit := r.limiters("admin", httpx.ModerateLimit)

	r.Mux.Handle("POST /v1/tokens", r.admin(&TokenGenerateHandler{
		TokenService:    r.TokenService,
		SettingsService: r.SettingsService,
	}, adminLimit))

	r.Mux.Handle("GET /v1/tokens/{token}", r.admin(&TokenValidateHandler{
		TokenService: r.TokenService,
	}, adminLimit))

	// Redeem is user-triggered, strict per caller and IP.
	r.Mux.Handle("POST /v1/tokens/redeem", r.member(&TokenRedeemHandler{
		TokenService: r.TokenService,
	}, r.limiters("redeem", httpx.StrictLimit)))
}

func (r *Router) registerMemberships() {
	r.Mux.Handle("GET /v1/memberships/{user_id}", r.member(&MembershipGetHandler{
		LedgerService: r.LedgerService,
	}, r.limiters("member_read", httpx.LenientLimit)))

	r.Mux.Handle("POST /v1/memberships/{user_id}/renew", r.admin(&MembershipRenewHandler{
		LedgerService: r.LedgerService,
	}, r.limiters("admin", httpx.ModerateLimit)))
}

func (r *Router) registerQueue() {
	r.Mux.Handle("POST /v1/queue", r.member(&QueueEnqueueHandler{
		QueueService:    r.QueueService,
		SettingsService: r.SettingsService,
		Now:             r.now,
	}, r.limiters("enqueue", httpx.StrictLimit)))

	r.Mux.Handle("GET /v1/queue/{user_id}", r.member(&QueueStatusHandler{
		QueueService:    r.QueueService,
		SettingsService: r.SettingsService,
		Now:             r.now,
	}, r.limiters("member_read", httpx.LenientLimit)))
}

func (r *Router) registerJobs() {
	adminLimit := r.limiters("admin", httpx.ModerateLimit)

	r.Mux.Handle("POST /v1/jobs/{name}/run", r.admin(&JobRunHandler{Scheduler: r.Scheduler}, adminLimit))
	r.Mux.Handle("GET /v1/jobs", r.admin(&JobsListHandler{Scheduler: r.Scheduler}, adminLimit))
}

func (r *Router) registerSettings() {
	adminLimit := r.limiters("admin", httpx.ModerateLimit)

	r.Mux.Handle("GET /v1/settings", r.admin(&SettingsGetHandler{SettingsService: r.SettingsService}, adminLimit))
	r.Mux.Handle("PUT /v1/settings", r.admin(&SettingsUpdateHandler{SettingsService: r.SettingsService}, adminLimit))
}

func (r *Router) registerSystem() {
	health := r.limiters("health", httpx.LenientLimit)

	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(health),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.Scheduler),
			httpx.RateLimitByIP(health),
		),
	)
}
