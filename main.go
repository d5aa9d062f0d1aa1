package main

import (
	"fmt"
	"time"

	"github.com/vanshajkaushik29/FraudGuardAI/internal/config"
	"github.com/vanshajkaushik29/FraudGuardAI/internal/database"
	"github.com/vanshajkaushik29/FraudGuardAI/internal/fraud"
	"github.com/vanshajkaushik29/FraudGuardAI/internal/router"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real config comes from config.yaml + FG_* env vars
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	classifier := fraud.NewHTTPClassifier(cfg.Fraud.URL, time.Duration(cfg.Fraud.TimeoutMS)*time.Millisecond)

	r := router.SetupRouter(cfg, db, classifier, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.WithField("addr", addr).Info("server listening")
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
