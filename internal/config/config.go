package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// JWTConfig defines issuer/secret pair for token signing and verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
	TTL    time.Duration
}

// MongoConfig is optional. When URI is empty the built-in seed is used.
type MongoConfig struct {
	URI                          string
	Database                     string
	Timeout                      time.Duration
	ClinicCollection             string
	ReviewCollection             string
	UserCollection               string
	ClaimCollection              string
	SubmissionCollection         string
	BlogPostCollection           string
	ProductReviewCollection      string
	SubscriberCollection         string
	TreatmentCollection          string
	CityCollection               string
	ProductCategoryCollection    string
	FailedNotificationCollection string
}

// Enabled reports whether a Mongo connection was configured.
func (m MongoConfig) Enabled() bool {
	return m.URI != ""
}

type BlobConfig struct {
	Driver            string
	MediaBaseURL      string
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3PathStyle       bool
	S3AccessKeyID     string
	S3SecretAccessKey string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MessengerConfig struct {
	Endpoint            string
	AdminDestination    string
	FallbackDestination string
	AdminBaseURL        string
	Timeout             time.Duration
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr             string
	Env              string
	ServiceName      string
	AllowedOrigins   []string
	JWT              JWTConfig
	Mongo            MongoConfig
	Blob             BlobConfig
	Redis            RedisConfig
	Messenger        MessengerConfig
	RateLimitPerHour int
	LatencyScale     float64
	RequestTimeout   time.Duration
	ShutdownTimeout  time.Duration
}

// Load reads environment variables and returns a fully populated Config.
func Load() (Config, error) {
	secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))
	if secret == "" {
		return Config{}, errors.New("AUTH_JWT_SECRET must be configured")
	}

	jwtTTL, err := parseDuration("AUTH_JWT_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	mongoTimeout, err := parseDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	messengerTimeout, err := parseDuration("MESSENGER_GATEWAY_TIMEOUT", 3*time.Second)
	if err != nil {
		return Config{}, err
	}
	requestTimeout, err := parseDuration("HTTP_REQUEST_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}

	latencyScale := 1.0
	if raw := strings.TrimSpace(os.Getenv("LATENCY_SCALE")); raw != "" {
		latencyScale, err = strconv.ParseFloat(raw, 64)
		if err != nil || latencyScale < 0 {
			return Config{}, fmt.Errorf("LATENCY_SCALE must be a non-negative number: %q", raw)
		}
	}

	rateLimit, err := parseInt("RATE_LIMIT_PER_HOUR", 20)
	if err != nil {
		return Config{}, err
	}
	redisDB, err := parseInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}

	blobDriver := strings.ToLower(envOrDefault("BLOB_DRIVER", "memory"))
	if blobDriver != "memory" && blobDriver != "s3" {
		return Config{}, fmt.Errorf("BLOB_DRIVER must be memory or s3: %q", blobDriver)
	}
	if blobDriver == "s3" && strings.TrimSpace(os.Getenv("BLOB_S3_BUCKET")) == "" {
		return Config{}, errors.New("BLOB_S3_BUCKET must be configured when BLOB_DRIVER=s3")
	}

	addr := envOrDefault("HTTP_ADDR", ":8080")

	cfg := Config{
		Addr:           addr,
		Env:            envOrDefault("APP_ENV", "development"),
		ServiceName:    envOrDefault("SERVICE_NAME", "hairline-api"),
		AllowedOrigins: parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		JWT: JWTConfig{
			Issuer: envOrDefault("AUTH_JWT_ISSUER", "hairline-directory"),
			Secret: []byte(secret),
			TTL:    jwtTTL,
		},
		Mongo: MongoConfig{
			URI:                          strings.TrimSpace(os.Getenv("MONGO_URI")),
			Database:                     envOrDefault("MONGO_DB", "hairline"),
			Timeout:                      mongoTimeout,
			ClinicCollection:             envOrDefault("CLINIC_COLLECTION", "clinics"),
			ReviewCollection:             envOrDefault("REVIEW_COLLECTION", "reviews"),
			UserCollection:               envOrDefault("USER_COLLECTION", "users"),
			ClaimCollection:              envOrDefault("CLAIM_COLLECTION", "claims"),
			SubmissionCollection:         envOrDefault("SUBMISSION_COLLECTION", "submissions"),
			BlogPostCollection:           envOrDefault("BLOG_POST_COLLECTION", "blog_posts"),
			ProductReviewCollection:      envOrDefault("PRODUCT_REVIEW_COLLECTION", "product_reviews"),
			SubscriberCollection:         envOrDefault("SUBSCRIBER_COLLECTION", "newsletter_subscribers"),
			TreatmentCollection:          envOrDefault("TREATMENT_COLLECTION", "treatments"),
			CityCollection:               envOrDefault("CITY_COLLECTION", "cities"),
			ProductCategoryCollection:    envOrDefault("PRODUCT_CATEGORY_COLLECTION", "product_categories"),
			FailedNotificationCollection: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
		},
		Blob: BlobConfig{
			Driver:            blobDriver,
			MediaBaseURL:      strings.TrimRight(envOrDefault("MEDIA_BASE_URL", "http://localhost"+addr+"/media"), "/"),
			S3Bucket:          strings.TrimSpace(os.Getenv("BLOB_S3_BUCKET")),
			S3Region:          envOrDefault("BLOB_S3_REGION", "us-east-1"),
			S3Endpoint:        strings.TrimSpace(os.Getenv("BLOB_S3_ENDPOINT")),
			S3PathStyle:       strings.EqualFold(strings.TrimSpace(os.Getenv("BLOB_S3_PATH_STYLE")), "true"),
			S3AccessKeyID:     strings.TrimSpace(os.Getenv("BLOB_S3_ACCESS_KEY_ID")),
			S3SecretAccessKey: strings.TrimSpace(os.Getenv("BLOB_S3_SECRET_ACCESS_KEY")),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Messenger: MessengerConfig{
			Endpoint:            strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_URL")),
			AdminDestination:    envOrDefault("MESSENGER_ADMIN_DESTINATION", "discord"),
			FallbackDestination: strings.TrimSpace(os.Getenv("MESSENGER_FALLBACK_DESTINATION")),
			AdminBaseURL:        strings.TrimSpace(os.Getenv("ADMIN_BASE_URL")),
			Timeout:             messengerTimeout,
		},
		RateLimitPerHour: rateLimit,
		LatencyScale:     latencyScale,
		RequestTimeout:   requestTimeout,
		ShutdownTimeout:  shutdownTimeout,
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func parseInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
