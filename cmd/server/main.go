package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/samaj-issue/api/internal/config"
	"github.com/samaj-issue/api/internal/events"
	"github.com/samaj-issue/api/internal/httpserver"
	"github.com/samaj-issue/api/internal/logging"
	"github.com/samaj-issue/api/internal/mailer"
	"github.com/samaj-issue/api/internal/middleware"
	"github.com/samaj-issue/api/internal/repo"
	"github.com/samaj-issue/api/internal/search"
	"github.com/samaj-issue/api/internal/service"
	"github.com/samaj-issue/api/internal/storage"
	"github.com/samaj-issue/api/internal/summarizer"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)

	prod := events.NewProducer([]string{configuration.KAFKA_ADDRESS})

	esClient, err := search.NewClient(configuration.ES_URL, configuration.ES_USER, configuration.ES_PASSWORD)
	if err != nil {
		log.Fatalf("elasticsearch init failed: %v", err)
	}
	issueIndex := search.NewIssueIndex(esClient, "issue")

	objectStorage, err := storage.New(context.Background(), storage.Config{
		Endpoint:      configuration.S3_ENDPOINT,
		Region:        configuration.S3_REGION,
		Bucket:        configuration.S3_BUCKET,
		AccessKey:     configuration.S3_ACCESS_KEY,
		SecretKey:     configuration.S3_SECRET_KEY,
		PublicBaseURL: configuration.S3_PUBLIC_URL,
	})
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	otpMailer := mailer.New(
		configuration.SMTP_HOST,
		configuration.SMTP_PORT,
		configuration.SMTP_USERNAME,
		configuration.SMTP_PASSWORD,
		configuration.EMAIL_FROM,
	)

	cohere := summarizer.New(configuration.COHERE_API_KEY)

	rp := &repo.GormRepo{DB: db}
	access := &service.AccessService{Repo: rp}
	authSvc := &service.AuthService{
		Repo:      rp,
		Mailer:    otpMailer,
		Storage:   objectStorage,
		Events:    prod,
		JWTSecret: jwtSecret,
	}
	issueSvc := &service.IssueService{
		Repo:    rp,
		Access:  access,
		Storage: objectStorage,
		Events:  prod,
		Index:   issueIndex,
	}
	commentSvc := &service.CommentService{Repo: rp, Access: access, Events: prod}
	upvoteSvc := &service.UpvoteService{Repo: rp}
	adminSvc := &service.AdminService{Repo: rp, Access: access, Events: prod, Issues: issueSvc}
	summarySvc := &service.SummaryService{Repo: rp, Summarizer: cohere}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"https://samaj-issue-frontend.vercel.app", "http://localhost:5173"},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestLogger(logger))

	deps := httpserver.Deps{
		Auth:      &httpserver.AuthHTTP{Svc: authSvc},
		Issue:     &httpserver.IssueHTTP{Svc: issueSvc},
		Comment:   &httpserver.CommentHTTP{Svc: commentSvc},
		Upvote:    &httpserver.UpvoteHTTP{Svc: upvoteSvc},
		Admin:     &httpserver.AdminHTTP{Svc: adminSvc, Comments: commentSvc},
		Summary:   &httpserver.SummaryHTTP{Svc: summarySvc},
		JWTSecret: jwtSecret,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
