// cmd/advisor-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"advisor-workers/internal/common/camunda"
	"advisor-workers/internal/common/config"
	"advisor-workers/internal/common/database"
	"advisor-workers/internal/common/logger"
	"advisor-workers/internal/common/observability"
	"advisor-workers/internal/engine"
	"advisor-workers/internal/knowledge"

	ce "advisor-workers/internal/workers/advising/check-eligibility"
	gp "advisor-workers/internal/workers/advising/graduation-progress"
	ia "advisor-workers/internal/workers/advising/infer-ability"
	re "advisor-workers/internal/workers/advising/rank-electives"
	rt "advisor-workers/internal/workers/advising/reasoning-trace"
	rs "advisor-workers/internal/workers/advising/resolve-semester"

	sc "advisor-workers/internal/workers/data-access/search-courses"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting advisor manager...")

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Load knowledge base ---
	var store *knowledge.Store
	switch cfg.Knowledge.Source {
	case "postgres":
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()

		store, err = knowledge.LoadFromPostgres(ctx, pg.DB)
		if err != nil {
			zapLog.Fatal("knowledge base load from postgres failed", zap.Error(err))
		}
	default:
		store, err = knowledge.LoadFromFiles(cfg.Knowledge.Dir)
		if err != nil {
			zapLog.Fatal("knowledge base load from files failed", zap.Error(err))
		}
	}
	zapLog.Info("Knowledge base loaded",
		zap.String("source", cfg.Knowledge.Source),
		zap.Int("courses", len(store.Courses())),
	)

	eng := engine.New(store, log)

	// --- Init Redis with retry (recommendation cache) ---
	var redisClient *goredis.Client
	var redisWrap *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisWrap, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisWrap.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		// The ranking worker degrades to uncached scoring without Redis.
		zapLog.Warn("redis unavailable, recommendation caching disabled", zap.Error(err))
	} else {
		defer redisWrap.Close()
		redisClient = redisWrap.Client
		zapLog.Info("Redis connected successfully")
	}

	// --- Init Elasticsearch with retry (course search) ---
	var esClient *elasticsearch.Client
	if cfg.Database.Elasticsearch.Enabled {
		var esWrap *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esWrap, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esWrap.Ping()
		}, 10, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			// search-courses falls back to in-memory catalog scans.
			zapLog.Warn("elasticsearch unavailable, course search runs in-memory", zap.Error(err))
		} else {
			esClient = esWrap.Client
			zapLog.Info("Elasticsearch connected successfully")
		}
	}

	// --- Init Zeebe client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer camundaClient.Close()
	zeebeClient := camundaClient.Raw()
	zapLog.Info("Zeebe client connected successfully")

	// --- Register workers ---
	var workers []*camunda.AdvisorWorker

	if wcfg := cfg.Workers[ce.TaskType]; wcfg.Enabled {
		handler := ce.NewHandler(
			&ce.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			eng, log,
		)
		workers = append(workers,
			camunda.NewWorker(zeebeClient, ce.TaskType, wcfg, handler, obs, zapLog))
	}

	if wcfg := cfg.Workers[re.TaskType]; wcfg.Enabled {
		handler := re.NewHandler(
			&re.Config{
				Timeout:  time.Duration(wcfg.Timeout) * time.Millisecond,
				CacheTTL: time.Duration(wcfg.CacheTTL) * time.Second,
			},
			eng, redisClient, log,
		)
		workers = append(workers,
			camunda.NewWorker(zeebeClient, re.TaskType, wcfg, handler, obs, zapLog))
	}

	if wcfg := cfg.Workers[gp.TaskType]; wcfg.Enabled {
		handler := gp.NewHandler(
			&gp.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			eng, log,
		)
		workers = append(workers,
			camunda.NewWorker(zeebeClient, gp.TaskType, wcfg, handler, obs, zapLog))
	}

	if wcfg := cfg.Workers[ia.TaskType]; wcfg.Enabled {
		handler := ia.NewHandler(
			&ia.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			eng, log,
		)
		workers = append(workers,
			camunda.NewWorker(zeebeClient, ia.TaskType, wcfg, handler, obs, zapLog))
	}

	if wcfg := cfg.Workers[rt.TaskType]; wcfg.Enabled {
		handler := rt.NewHandler(
			&rt.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			eng, log,
		)
		workers = append(workers,
			camunda.NewWorker(zeebeClient, rt.TaskType, wcfg, handler, obs, zapLog))
	}

	if wcfg := cfg.Workers[rs.TaskType]; wcfg.Enabled {
		handler := rs.NewHandler(
			&rs.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			eng, log,
		)
		workers = append(workers,
			camunda.NewWorker(zeebeClient, rs.TaskType, wcfg, handler, obs, zapLog))
	}

	// --- Register data-access workers ---
	if wcfg := cfg.Workers[sc.TaskType]; wcfg.Enabled {
		scCfg := sc.LoadConfig()
		scCfg.Timeout = time.Duration(wcfg.Timeout) * time.Millisecond
		if cfg.Database.Elasticsearch.Index != "" {
			scCfg.Index = cfg.Database.Elasticsearch.Index
		}
		handler := sc.NewHandler(scCfg, store, esClient, log)
		workers = append(workers,
			camunda.NewWorker(zeebeClient, sc.TaskType, wcfg, handler, obs, zapLog))
	}

	// --- Health & metrics server ---
	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				fmt.Fprintln(w, "ok")
			})
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			zapLog.Info("Health/Metrics server listening", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, nil); err != nil {
				zapLog.Error("Health/Metrics server failed", zap.Error(err))
			}
		}()
	}

	// --- Graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	for _, w := range workers {
		w.Stop(stopCtx)
	}
	zapLog.Info("Advisor manager stopped gracefully")
}
