package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/hairline-directory/api/internal/directory/seed"
	mongodoc "github.com/sngm3741/hairline-directory/api/internal/infrastructure/mongo"
	"github.com/sngm3741/hairline-directory/api/internal/observability"
)

type seedOptions struct {
	envName         string
	envDir          string
	dropCollections bool
	timeout         time.Duration
}

func main() {
	opts := parseFlags()
	logger := observability.NewLogger("hairline-seed", "development")

	if err := loadEnvFiles(opts.envDir, opts.envName); err != nil {
		logger.Fatal().Err(err).Msg("環境変数の読み込みに失敗しました")
	}

	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "hairline")

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("MongoDB 接続に失敗しました")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	repo := mongodoc.NewSeedRepository(client.Database(dbName), collectionsFromEnv())
	state := seed.Initial()

	if err := repo.Write(ctx, state, opts.dropCollections); err != nil {
		logger.Fatal().Err(err).Msg("シードデータの投入に失敗しました")
	}
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Fatal().Err(err).Msg("インデックス作成に失敗しました")
	}

	logger.Info().
		Int("clinics", len(state.Clinics)).
		Int("users", len(state.Users)).
		Int("pendingReviews", len(state.PendingReviews)).
		Int("pendingClaims", len(state.PendingClaims)).
		Int("blogPosts", len(state.BlogPosts)).
		Int("products", len(state.ProductReviews)).
		Bool("dropped", opts.dropCollections).
		Str("db", dbName).
		Str("env", opts.envName).
		Msg("Seed 完了")
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envName, "env", "local", "env ディレクトリ内の env ファイル名 (例: local, staging)。空文字で読み込みを省略")
	flag.StringVar(&opts.envDir, "env-dir", filepath.Join("..", "env"), "env ファイルのディレクトリ")
	flag.BoolVar(&opts.dropCollections, "drop", true, "既存コレクションを削除してから投入する")
	flag.DurationVar(&opts.timeout, "timeout", 60*time.Second, "処理全体のタイムアウト")
	flag.Parse()
	return opts
}

// loadEnvFiles は shared.env と <env>.env を読み込み、既存の環境変数を上書きする。
func loadEnvFiles(dir, envName string) error {
	if strings.TrimSpace(envName) == "" {
		return nil
	}
	base := filepath.Clean(dir)
	files := []string{
		filepath.Join(base, "shared.env"),
		filepath.Join(base, fmt.Sprintf("%s.env", envName)),
	}
	if err := godotenv.Overload(files...); err != nil {
		return fmt.Errorf("%s: %w", base, err)
	}
	return nil
}

func collectionsFromEnv() mongodoc.Collections {
	defaults := mongodoc.DefaultCollections()
	return mongodoc.Collections{
		Clinics:           envOrDefault("CLINIC_COLLECTION", defaults.Clinics),
		Reviews:           envOrDefault("REVIEW_COLLECTION", defaults.Reviews),
		Users:             envOrDefault("USER_COLLECTION", defaults.Users),
		Claims:            envOrDefault("CLAIM_COLLECTION", defaults.Claims),
		Submissions:       envOrDefault("SUBMISSION_COLLECTION", defaults.Submissions),
		BlogPosts:         envOrDefault("BLOG_POST_COLLECTION", defaults.BlogPosts),
		ProductReviews:    envOrDefault("PRODUCT_REVIEW_COLLECTION", defaults.ProductReviews),
		Subscribers:       envOrDefault("SUBSCRIBER_COLLECTION", defaults.Subscribers),
		Treatments:        envOrDefault("TREATMENT_COLLECTION", defaults.Treatments),
		Cities:            envOrDefault("CITY_COLLECTION", defaults.Cities),
		ProductCategories: envOrDefault("PRODUCT_CATEGORY_COLLECTION", defaults.ProductCategories),
	}
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
