package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"m2align/internal/align"
	"m2align/internal/cache"
	"m2align/internal/lexicon"
	"m2align/internal/logging"
	"m2align/internal/server"
	"m2align/pkg/options"
)

func main() {
	log, err := logging.Init(os.Stderr, getenv("LOG_LEVEL", "info"), getenv("LOG_FORMAT", "json"))
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	opts := []options.Options{options.WithMerge(getenv("MERGE", "rules"))}
	if getEnvBool("LEV", false) {
		opts = append(opts, options.WithLevenshtein())
	}
	if path := os.Getenv("RULES_PATH"); path != "" {
		opts = append(opts, options.WithRulesFile(path))
	}
	aligner, err := align.New(opts...)
	if err != nil {
		log.Error("init error", "error", err)
		os.Exit(1)
	}

	redisAddr := getenv("REDIS_ADDR", "localhost:6379")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := getEnvInt("REDIS_DB", 0)

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
	defer client.Close()

	var results *cache.Cache
	if ttl := getEnvInt("CACHE_TTL", 3600); ttl >= 0 {
		results = cache.New(client, time.Duration(ttl)*time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(aligner, lexicon.New(client), results, log, splitList(os.Getenv("FUNCTION_WORDS"))...)
	if err := srv.Reload(ctx); err != nil {
		log.Warn("function words unavailable, starting with built-in lexicon", "error", err)
	}

	addr := getenv("HTTP_ADDR", ":8080")
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("listening", "addr", addr, "merge", aligner.Strategy().String(), "lev", aligner.Plain())
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
