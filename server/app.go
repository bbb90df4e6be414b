package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"claimdesk/config"
	"claimdesk/internal/accounts"
	"claimdesk/internal/agents"
	"claimdesk/internal/authz"
	"claimdesk/internal/claims"
	"claimdesk/internal/db"
	"claimdesk/internal/health"
	"claimdesk/internal/logs"
	"claimdesk/internal/middleware"
	"claimdesk/internal/models"
	"claimdesk/internal/policies"
	"claimdesk/internal/queries"
	"claimdesk/internal/repo"
	"claimdesk/internal/token"
	"claimdesk/internal/uploads"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type App struct {
	cfg        *config.Config
	db         *gorm.DB
	Router     *mux.Router
	httpServer *http.Server

	ctx    context.Context
	cancel context.CancelFunc
}

func (a *App) Initialize(cfg *config.Config) {
	a.cfg = cfg

	/* 1) Логи */
	logs.Init(logs.Options{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		File:   a.cfg.Logging.File,
	})

	/* 2) DB */
	d, err := db.Open(a.cfg.Database.Driver, a.cfg.Database.DSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	a.db = d

	if err := a.db.AutoMigrate(
		&models.Employee{},
		&models.Agent{},
		&models.AgentAvailability{},
		&models.Hr{},
		&models.Admin{},
		&models.Policy{},
		&models.Claim{},
		&models.EmployeeQuery{},
	); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	/* 3) Кодек токенов + guard */
	ttl, err := a.cfg.TokenTTLDuration()
	if err != nil {
		log.Fatalf("token ttl: %v", err)
	}
	codec := token.New(a.cfg.Auth.TokenSecret, ttl)
	guard := authz.NewGuard(codec, authz.Default())

	/* 4) Сторы и сервисы */
	employees := repo.NewEmployeeStore(a.db)
	agentStore := repo.NewAgentStore(a.db)
	hrs := repo.NewHrStore(a.db)
	admins := repo.NewAdminStore(a.db)
	policyStore := repo.NewPolicyStore(a.db)
	claimStore := repo.NewClaimStore(a.db)
	queryStore := repo.NewQueryStore(a.db)

	accountsSvc := accounts.NewService(employees, agentStore, hrs, admins, codec)
	if err := accountsSvc.SeedAdmin(context.Background(),
		a.cfg.Auth.AdminEmail, a.cfg.Auth.AdminPassword, a.cfg.Auth.AdminName); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}

	storage, err := uploads.NewLocal(a.cfg.Uploads.Dir)
	if err != nil {
		log.Fatalf("uploads init failed: %v", err)
	}

	agentsSvc := agents.NewService(agentStore)
	claimsSvc := claims.NewService(claimStore, policyStore, hrs)
	queriesSvc := queries.NewService(queryStore, agentStore, employees, agentsSvc)

	/* 5) Router + middleware */
	a.Router = mux.NewRouter().StrictSlash(true)
	a.Router.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middleware.LoggerMW,
		guard.Middleware(),
	)

	health.RegisterRoutes(a.Router, a.db)
	accounts.RegisterRoutes(a.Router, accounts.NewHandler(accountsSvc))
	policies.RegisterRoutes(a.Router, policies.NewHandler(policyStore))
	agents.RegisterRoutes(a.Router, agents.NewHandler(agentsSvc, agentStore))
	claims.RegisterRoutes(a.Router, claims.NewHandler(claimsSvc, employees, hrs, storage))
	queries.RegisterRoutes(a.Router, queries.NewHandler(queriesSvc, employees, agentStore))

	/* (необязательно) вывести известные маршруты в лог при старте */
	_ = a.Router.Walk(func(rt *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, _ := rt.GetPathTemplate()
		methods, _ := rt.GetMethods()
		if len(methods) == 0 {
			methods = []string{"ANY"}
		}
		log.Printf("route: %-6v %s", methods, path)
		return nil
	})
}

func (a *App) Run() error {
	if a.Router == nil || a.cfg == nil {
		return fmt.Errorf("server not initialized")
	}

	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigs
		logs.Logger.Infof("shutdown signal: %s", s)
		a.cancel()
	}()

	// Жёсткие таймауты — это важно для production
	a.httpServer = &http.Server{
		Addr:              bind,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logs.Logger.Infof("HTTP listening on %s", bind)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logs.Logger.Fatalf("http server error: %v", err)
		}
	}()

	<-a.ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logs.Logger.Errorf("http shutdown: %v", err)
	}
	return nil
}
