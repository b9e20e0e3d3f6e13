package router

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "pettabl/docs"
	objmem "pettabl/internal/adapters/objectstore/memory"
	mem "pettabl/internal/adapters/storage/memory"
	pg "pettabl/internal/adapters/storage/postgres"
	"pettabl/internal/domain/accounts"
	"pettabl/internal/domain/activities"
	"pettabl/internal/domain/dashboard"
	"pettabl/internal/domain/pets"
	"pettabl/internal/domain/profiles"
	"pettabl/internal/domain/schedules"
	"pettabl/internal/domain/sessions"
	"pettabl/internal/domain/waitlist"
	"pettabl/internal/middleware"
	"pettabl/internal/platform/logger"
	"pettabl/internal/ports/auth"
	"pettabl/internal/ports/objectstore"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"
)

const defaultMaxUploadBytes = 10 << 20

type Options struct {
	AuthVerifier auth.AuthVerifier     // puede ser nil (modo dev)
	Identity     auth.IdentityProvider // nil => /auth/* responde 501

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Objects nil => archivos en memoria servidos bajo /files.
	Objects       objectstore.Store
	PublicBaseURL string

	// WaitlistSink nil => tabla waitlist del storage elegido.
	WaitlistSink  waitlist.Sink
	WaitlistRate  float64
	WaitlistBurst int

	Logger   logger.Logger
	Location *time.Location

	AgentSearchCacheTTL time.Duration
	MaxUploadBytes      int64
	EnableDocs          bool
}

func NewRouter(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.WaitlistRate <= 0 {
		opts.WaitlistRate = 1
	}
	if opts.WaitlistBurst <= 0 {
		opts.WaitlistBurst = 5
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.RequestLogger(opts.Logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.EnableDocs {
		r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))
	}

	var (
		profileRepo  profiles.Repository
		petRepo      pets.Repository
		sessionRepo  sessions.Repository
		scheduleRepo schedules.Repository
		activityRepo activities.Repository
		waitlistRepo waitlist.Sink
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				opts.Logger.Warn("db open failed, using in-memory storage", map[string]any{"err": err})
			}
		}
	}

	if db != nil {
		profileRepo = pg.NewProfilesRepo(db)
		petRepo = pg.NewPetsRepo(db)
		sessionRepo = pg.NewSessionsRepo(db)
		scheduleRepo = pg.NewSchedulesRepo(db)
		activityRepo = pg.NewActivitiesRepo(db)
		waitlistRepo = pg.NewWaitlistRepo(db)
	} else {
		memDB := mem.NewDB()
		profileRepo = mem.NewProfileRepo(memDB)
		petRepo = mem.NewPetRepo(memDB)
		sessionRepo = mem.NewSessionRepo(memDB)
		scheduleRepo = mem.NewScheduleRepo(memDB)
		activityRepo = mem.NewActivityRepo(memDB)
		waitlistRepo = mem.NewWaitlistRepo(memDB)
	}

	objects := opts.Objects
	if objects == nil {
		local := objmem.New(opts.PublicBaseURL)
		r.Get("/files/{bucket}/*", local.ServeFile)
		objects = local
	}

	sink := opts.WaitlistSink
	if sink == nil {
		sink = waitlistRepo
	}

	// Services por módulo
	profilesSvc := profiles.NewService(profileRepo)
	petsSvc := pets.NewService(petRepo)
	sessionsSvc := sessions.NewService(sessionRepo, petsSvc, profilesSvc, opts.Location)
	schedulesSvc := schedules.NewService(scheduleRepo, petsSvc, sessionsSvc)
	activitiesSvc := activities.NewService(activityRepo, sessionsSvc, sessionsSvc, opts.Location)
	dashboardSvc := dashboard.NewService(sessionsSvc, petsSvc, schedulesSvc, activitiesSvc)
	accountsSvc := accounts.NewService(opts.Identity, profilesSvc)
	waitlistSvc := waitlist.NewService(sink)

	var searchCache func(http.Handler) http.Handler
	if opts.AgentSearchCacheTTL > 0 {
		searchCache = middleware.Cache(cache.New(opts.AgentSearchCacheTTL, 2*opts.AgentSearchCacheTTL), opts.AgentSearchCacheTTL)
	}

	// Rutas públicas
	accounts.RegisterRoutes(r, accountsSvc)
	waitlist.RegisterRoutes(r, waitlistSvc, waitlist.HandlerOptions{
		RateLimit: middleware.RateLimit(rate.Limit(opts.WaitlistRate), opts.WaitlistBurst),
		Logger:    opts.Logger,
	})

	// Rutas por módulo
	profiles.RegisterRoutes(r, profilesSvc, profiles.HandlerOptions{
		Objects:        objects,
		MaxUploadBytes: opts.MaxUploadBytes,
		SearchCache:    searchCache,
	})
	pets.RegisterRoutes(r, petsSvc, sessionsSvc, pets.HandlerOptions{
		Objects:        objects,
		MaxUploadBytes: opts.MaxUploadBytes,
		Profiles:       profilesSvc,
	})
	sessions.RegisterRoutes(r, sessionsSvc, petsSvc, profilesSvc)
	schedules.RegisterRoutes(r, schedulesSvc)
	activities.RegisterRoutes(r, activitiesSvc, activities.HandlerOptions{
		Objects:        objects,
		MaxUploadBytes: opts.MaxUploadBytes,
		People:         profilesSvc,
		Logger:         opts.Logger,
	})
	dashboard.RegisterRoutes(r, dashboardSvc)

	return r
}
