package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "gestion-correos/docs"
	mem "gestion-correos/internal/adapters/storage/memory"
	pg "gestion-correos/internal/adapters/storage/postgres"
	rds "gestion-correos/internal/adapters/storage/redis"
	"gestion-correos/internal/domain/correos"
	"gestion-correos/internal/domain/entidades"
	"gestion-correos/internal/domain/metricas"
	"gestion-correos/internal/domain/notificaciones"
	"gestion-correos/internal/domain/tipos"
	"gestion-correos/internal/domain/usuarios"
	"gestion-correos/internal/middleware"
	"gestion-correos/internal/platform/logger"
	"gestion-correos/internal/platform/seed"
	"gestion-correos/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
	// Opcional: marcas de leído de notificaciones en Redis.
	Redis goredis.UniversalClient

	Logger logger.Logger

	// RateLimitRPS <= 0 desactiva el limitador.
	RateLimitRPS   float64
	RateLimitBurst int

	TendenciaMeses int

	// Seed solo se aplica en modo memoria.
	Seed *seed.File
}

type repos struct {
	usuarios  usuarios.Repository
	entidades entidades.Repository
	tipos     tipos.Repository
	correos   correos.Repository
	flujos    correos.FlujoRepository
	lecturas  notificaciones.LecturasRepository
}

func newRepos(opts Options) repos {
	var rp repos
	if opts.DB != nil {
		rp = repos{
			usuarios:  pg.NewUsuariosRepo(opts.DB),
			entidades: pg.NewEntidadesRepo(opts.DB),
			tipos:     pg.NewTiposRepo(opts.DB),
			correos:   pg.NewCorreosRepo(opts.DB),
			flujos:    pg.NewFlujosRepo(opts.DB),
			lecturas:  pg.NewLecturasRepo(opts.DB),
		}
	} else {
		rp = repos{
			usuarios:  mem.NewUsuarioRepo(),
			entidades: mem.NewEntidadRepo(),
			tipos:     mem.NewTipoRepo(),
			correos:   mem.NewCorreoRepo(),
			flujos:    mem.NewFlujoRepo(),
			lecturas:  mem.NewLecturasRepo(),
		}
	}
	if opts.Redis != nil {
		rp.lecturas = rds.NewLecturasRepo(opts.Redis)
	}
	return rp
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)
	if opts.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).Handler)
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	rp := newRepos(opts)

	// Services por módulo
	usuariosSvc := usuarios.NewService(rp.usuarios).ConReferencias(correos.ReferenciaGestor(rp.correos))
	entidadesSvc := entidades.NewService(rp.entidades).ConReferencias(correos.ReferenciaEntidad(rp.correos))
	tiposSvc := tipos.NewService(rp.tipos).ConReferencias(correos.ReferenciaTipo(rp.correos))
	correosSvc := correos.NewService(correos.Deps{
		Correos:   rp.correos,
		Flujos:    rp.flujos,
		Entidades: rp.entidades,
		Tipos:     rp.tipos,
		Usuarios:  rp.usuarios,
		Logger:    log,
	})

	loader := &correos.SnapshotLoader{
		Correos:   rp.correos,
		Flujos:    rp.flujos,
		Entidades: rp.entidades,
		Tipos:     rp.tipos,
		Usuarios:  rp.usuarios,
	}
	metricasSvc := metricas.NewService(loader, opts.TendenciaMeses)
	notifSvc := notificaciones.NewService(loader, rp.lecturas)

	if opts.DB == nil && opts.Seed != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := seed.Apply(ctx, seed.Services{
			Usuarios:  usuariosSvc,
			Entidades: entidadesSvc,
			Tipos:     tiposSvc,
			Correos:   correosSvc,
		}, *opts.Seed, time.Now(), log)
		cancel()
		if err != nil {
			log.Error("seed failed", map[string]any{"error": err})
		}
	}

	// Rutas por módulo
	adminRole := usuarios.RolAdmin.Token()
	usuarios.RegisterRoutes(r, usuariosSvc)
	entidades.RegisterRoutes(r, entidadesSvc, adminRole)
	tipos.RegisterRoutes(r, tiposSvc, adminRole)
	correos.RegisterRoutes(r, correosSvc)
	metricas.RegisterRoutes(r, metricasSvc)
	notificaciones.RegisterRoutes(r, notifSvc)

	return r
}
