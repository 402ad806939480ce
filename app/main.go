package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jaehyunkim/engage/internal/commentservice"
	"github.com/jaehyunkim/engage/internal/common"
	"github.com/jaehyunkim/engage/internal/counterservice"
	"github.com/jaehyunkim/engage/internal/mailservice"
	"github.com/jaehyunkim/engage/internal/postservice"
	"github.com/jaehyunkim/engage/internal/searchservice"
)

type application struct {
	config         *Config
	logger         *slog.Logger
	commentService *commentservice.CommentService
	counterService *counterservice.CounterService
	searchService  *searchservice.SearchService
	postService    *postservice.PostService
	mailService    *mailservice.MailService
	sessions       *counterservice.SessionResolver
	cache          *common.Cache
	publisher      common.MessageProducer
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the database
	db, err := common.NewDB(common.DBConfig{
		Host:         cfg.DBHost,
		Port:         cfg.DBPort,
		User:         cfg.DBUser,
		Password:     cfg.DBPassword,
		Name:         cfg.DBName,
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		MaxIdleTime:  15 * time.Minute,
	})
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	// Connect to the message broker and declare the comment exchange
	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupCommentExchange(broker)
	if err != nil {
		logger.Error("failed to setup the comment exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sessions, err := counterservice.NewSessionResolver(cfg.SessionSecret)
	if err != nil {
		logger.Error("failed to create the session resolver", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	posts := postservice.New(cfg.ContentDir)

	app := &application{
		config:         cfg,
		logger:         logger,
		commentService: commentservice.NewCommentService(commentservice.NewCommentModel(db)),
		counterService: counterservice.NewCounterService(counterservice.NewCounterModel(db), cache),
		searchService:  searchservice.New(posts),
		postService:    posts,
		mailService:    mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailOwner, cfg.MailPort, logger),
		sessions:       sessions,
		cache:          cache,
		publisher:      broker,
	}

	// Initialize the notification consumers
	app.mailService.SendCommentNotifications()
	defer app.mailService.Close()

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
