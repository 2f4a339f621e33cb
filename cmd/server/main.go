package main

import (
	"log"

	"github.com/SergiyLacitis/habit-tasks-backend/internal/auth"
	"github.com/SergiyLacitis/habit-tasks-backend/internal/config"
	"github.com/SergiyLacitis/habit-tasks-backend/internal/database"
	"github.com/SergiyLacitis/habit-tasks-backend/internal/repository"
	"github.com/SergiyLacitis/habit-tasks-backend/internal/server"
	"github.com/SergiyLacitis/habit-tasks-backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.Println("Config loaded successfully")

	privatePEM, publicPEM, err := cfg.Auth.ReadKeyPair()
	if err != nil {
		log.Fatalf("failed to load signing keys: %v", err)
	}

	codec, err := auth.NewCodec(privatePEM, publicPEM, cfg.Auth.Algorithm)
	if err != nil {
		log.Fatalf("failed to create token codec: %v", err)
	}
	issuer := auth.NewIssuer(codec, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL())

	db, err := database.InitDB(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("failed to init database: %v", err)
	}

	repo := repository.NewRepository(db)
	svc := service.NewService(repo, codec, issuer)
	srv := server.NewServer(svc, cfg.Server.Addr())

	if err := srv.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
