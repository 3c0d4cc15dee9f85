package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"listing-service/dataset"
	"listing-service/internal/adapters/catalog"
	logger_adapter "listing-service/internal/adapters/logger"
	"listing-service/internal/adapters/memory"
	postgres_adapter "listing-service/internal/adapters/postgres"
	rabbitmq_adapter "listing-service/internal/adapters/rabbitmq"
	"listing-service/internal/adapters/rest"
	token_adapter "listing-service/internal/adapters/token"
	"listing-service/internal/configs"
	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/factory"
	"listing-service/internal/core/port"
	"listing-service/internal/core/usecase"
	fluentlogger "listing-service/pkg/fluent_logger"
	"listing-service/pkg/postgres"
	"listing-service/pkg/rabbitmq/rabbitmq_common"
	"listing-service/pkg/rabbitmq/rabbitmq_consumer"
	"listing-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	connManager           *rabbitmq_common.ConnectionManager
	searchEventsProducer  *rabbitmq_producer.Publisher
	searchHistoryListener port.EventListenerPort
}

// visitorRepositories - хранилища списков посетителя, Postgres или память.
type visitorRepositories struct {
	favorites      port.FavoritesRepositoryPort
	recentlyViewed port.RecentlyViewedRepositoryPort
	searchHistory  port.SearchHistoryRepositoryPort
}

// NewApp создает новый экземпляр приложения.
// Здесь все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ЛОГГЕРЫ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	initCtx := contextkeys.ContextWithLogger(context.Background(), baseLogger)

	// --- 2. КАТАЛОГ ---
	propertyFactory := factory.NewPropertyFactory(appConfig.Seed.CurrentYear)
	listingCatalog, err := catalog.New(initCtx, dataset.FS, propertyFactory, appConfig.Seed.StartID)
	if err != nil {
		appLogger.Error("Failed to build listing catalog", err, nil)
		application.closeResources()
		return nil, fmt.Errorf("failed to build listing catalog: %w", err)
	}
	matcher := listingCatalog.Matcher()

	// --- 3. ХРАНИЛИЩА ПОСЕТИТЕЛЕЙ ---
	repos, err := application.initRepositories(initCtx)
	if err != nil {
		application.closeResources()
		return nil, err
	}

	tokenService, err := token_adapter.NewTokenService(appConfig.Token.Secret, appConfig.Token.TTL)
	if err != nil {
		appLogger.Error("Failed to create token service", err, nil)
		application.closeResources()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	saveSearchHistoryUseCase := usecase.NewSaveSearchHistoryUseCase(repos.searchHistory)

	// --- 4. СОБЫТИЯ ПОИСКА ---
	var searchEventPublisher port.SearchEventPublisherPort
	if appConfig.RabbitMQ.Enabled {
		searchEventPublisher, err = application.initSearchEvents(baseLogger, saveSearchHistoryUseCase)
		if err != nil {
			application.closeResources()
			return nil, err
		}
	} else {
		searchEventPublisher = memory.NewDirectSearchEventPublisher(saveSearchHistoryUseCase)
		appLogger.Info("RabbitMQ disabled, search history is saved in-process.", nil)
	}

	// --- 5. USE CASES ---
	recordViewUseCase := usecase.NewRecordViewUseCase(repos.recentlyViewed, listingCatalog)
	recordSearchUseCase := usecase.NewRecordSearchUseCase(searchEventPublisher, matcher)

	searchHandlers := rest.NewSearchHandler(
		usecase.NewSearchListingsUseCase(listingCatalog, matcher, appConfig.Search.PerPage),
		recordSearchUseCase,
	)
	listingHandlers := rest.NewListingHandler(
		usecase.NewGetListingDetailsUseCase(listingCatalog, recordViewUseCase),
		usecase.NewGetSimilarListingsUseCase(listingCatalog),
		usecase.NewGetNewArrivalsUseCase(listingCatalog),
		usecase.NewGetDictionariesUseCase(matcher),
		usecase.NewGetLineStopsUseCase(matcher),
	)
	visitorHandlers := rest.NewVisitorHandler(rest.VisitorUseCases{
		IssueToken:       usecase.NewIssueVisitorTokenUseCase(tokenService),
		AddFavorite:      usecase.NewAddToFavoritesUseCase(repos.favorites, listingCatalog),
		RemoveFavorite:   usecase.NewRemoveFromFavoritesUseCase(repos.favorites),
		ToggleFavorite:   usecase.NewToggleFavoriteUseCase(repos.favorites, listingCatalog),
		GetFavorites:     usecase.NewGetVisitorFavoritesUseCase(repos.favorites, listingCatalog),
		GetFavoriteIds:   usecase.NewGetVisitorFavoritesIdsUseCase(repos.favorites),
		RecordView:       recordViewUseCase,
		RecentlyViewed:   usecase.NewGetRecentlyViewedUseCase(repos.recentlyViewed, listingCatalog),
		RecordSearch:     recordSearchUseCase,
		GetSearchHistory: usecase.NewGetSearchHistoryUseCase(repos.searchHistory),
		RemoveHistory:    usecase.NewRemoveSearchHistoryUseCase(repos.searchHistory),
		ClearHistory:     usecase.NewClearSearchHistoryUseCase(repos.searchHistory),
	})
	visitorAuth := rest.NewVisitorAuth(usecase.NewValidateVisitorTokenUseCase(tokenService))
	appLogger.Info("All use cases initialized.", nil)

	// --- 6. REST ---
	application.apiServer = rest.NewServer(rest.ServerConfig{
		Port:           appConfig.Rest.PORT,
		AllowedOrigins: appConfig.Rest.AllowedOrigins,
	}, searchHandlers, listingHandlers, visitorHandlers, visitorAuth, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return application, nil
}

func (a *App) initRepositories(ctx context.Context) (*visitorRepositories, error) {
	if a.config.Database.URL == "" {
		a.logger.Warn("DATABASE_URL is not set, visitor lists are kept in memory.", nil)
		return &visitorRepositories{
			favorites:      memory.NewFavoritesRepository(),
			recentlyViewed: memory.NewRecentlyViewedRepository(),
			searchHistory:  memory.NewSearchHistoryRepository(),
		}, nil
	}

	dbPool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: a.config.Database.URL})
	if err != nil {
		a.logger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	a.dbPool = dbPool
	a.logger.Info("Successfully connected to PostgreSQL pool!", nil)

	if err := postgres_adapter.EnsureSchema(ctx, dbPool); err != nil {
		a.logger.Error("Failed to prepare database schema", err, nil)
		return nil, fmt.Errorf("failed to prepare database schema: %w", err)
	}

	favorites, err := postgres_adapter.NewPostgresFavoritesRepository(dbPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create favorites repository: %w", err)
	}
	recentlyViewed, err := postgres_adapter.NewPostgresRecentlyViewedRepository(dbPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create recently viewed repository: %w", err)
	}
	searchHistory, err := postgres_adapter.NewPostgresSearchHistoryRepository(dbPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create search history repository: %w", err)
	}

	return &visitorRepositories{
		favorites:      favorites,
		recentlyViewed: recentlyViewed,
		searchHistory:  searchHistory,
	}, nil
}

func (a *App) initSearchEvents(baseLogger port.LoggerPort, saveUseCase *usecase.SaveSearchHistoryUseCase) (port.SearchEventPublisherPort, error) {
	pkgLoggerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))

	connManager, err := rabbitmq_common.GetManager(a.config.RabbitMQ.URL, pkgLoggerBridge)
	if err != nil {
		a.logger.Error("Failed to connect to RabbitMQ", err, nil)
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	a.connManager = connManager

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		ExchangeName:             constants.ListingExchange,
		ExchangeType:             constants.ListingExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   pkgLoggerBridge,
	}, connManager)
	if err != nil {
		a.logger.Error("Failed to create event producer", err, nil)
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	a.searchEventsProducer = producer
	a.logger.Info("RabbitMQ Event Producer initialized.", nil)

	queueAdapter, err := rabbitmq_adapter.NewSearchEventQueueAdapter(producer, constants.RoutingKeySearchPerformed)
	if err != nil {
		return nil, fmt.Errorf("failed to create search event adapter: %w", err)
	}

	consumerCfg := rabbitmq_consumer.ConsumerConfig{
		Config:                 rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		QueueName:              constants.SearchHistoryQueue,
		DeclareQueue:           true,
		DurableQueue:           true,
		ExchangeNameForBind:    constants.ListingExchange,
		DeclareExchangeForBind: true,
		ExchangeTypeForBind:    constants.ListingExchangeType,
		DurableExchangeForBind: true,
		RoutingKeyForBind:      constants.RoutingKeySearchPerformed,
		PrefetchCount:          constants.SearchHistoryPrefetch,
		ConsumerTag:            constants.SearchHistoryConsumerTag,

		EnableRetryMechanism: true,
		RetryExchange:        constants.SearchHistoryRetryExchange,
		RetryQueue:           constants.SearchHistoryRetryQueue,
		RetryTTL:             constants.SearchHistoryRetryTTLMs,
		FinalDLXExchange:     constants.SearchHistoryDLX,
		FinalDLQ:             constants.SearchHistoryDLQ,
		FinalDLQRoutingKey:   constants.SearchHistoryDLQRoutingKey,
		MaxRetries:           constants.SearchHistoryMaxRetries,
	}
	listener, err := rabbitmq_adapter.NewSearchHistoryConsumerAdapter(consumerCfg, saveUseCase, baseLogger, connManager)
	if err != nil {
		a.logger.Error("Failed to create search history listener", err, nil)
		return nil, err
	}
	a.searchHistoryListener = listener
	a.logger.Info("Search History Listener initialized.", nil)

	return queueAdapter, nil
}

// closeResources закрывает все, что успели открыть. Порядок: слушатель, продюсер, брокер, БД, fluent.
func (a *App) closeResources() {
	if a.searchHistoryListener != nil {
		if err := a.searchHistoryListener.Close(); err != nil {
			a.logger.Error("Error closing search history listener", err, nil)
		}
	}

	if a.searchEventsProducer != nil {
		if err := a.searchEventsProducer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
	}

	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}

	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		a.logger.Info("Application shut down gracefully.", nil)
		a.closeResources()
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 2)

	startListener := func(name string, listener port.EventListenerPort) {
		defer wg.Done()
		listenerLogger := a.logger.WithFields(port.Fields{"listener_name": name})
		listenerLogger.Info("Starting listener...", nil)

		if err := listener.Start(appCtx); err != nil {
			listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
			errorsCh <- fmt.Errorf("%s error: %w", name, err)
		} else {
			listenerLogger.Info("Listener stopped gracefully due to context cancellation.", nil)
		}
	}

	if a.searchHistoryListener != nil {
		wg.Add(1)
		go startListener("Search History Listener", a.searchHistoryListener)
	}

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
		runErr = err
	}

	cancelApp()

	return runErr
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
