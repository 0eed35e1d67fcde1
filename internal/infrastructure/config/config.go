package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Worker pool
	WorkerCount int
	QueueSize   int

	// Demo task history
	DBPath string

	// NATS demo worker
	NATSURL       string
	TaskSubject   string
	ResultSubject string
	WorkerQueue   string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		WorkerCount:     getenvInt("WORKER_COUNT", 4),
		QueueSize:       getenvInt("QUEUE_SIZE", 0), // 0 lets the pool pick its default
		DBPath:          getenvDefault("DB_PATH", "jobpool.db"),
		NATSURL:         getenvDefault("NATS_URL", "nats://127.0.0.1:4222"),
		TaskSubject:     getenvDefault("TASK_SUBJECT", "tasks.submit"),
		ResultSubject:   getenvDefault("RESULT_SUBJECT", "tasks.done"),
		WorkerQueue:     getenvDefault("WORKER_QUEUE", "jobpool-workers"),
	}
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid integer: %v", k, v, err)
	}
	return n
}

func getenvDuration(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}
