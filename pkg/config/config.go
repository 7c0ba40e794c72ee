package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-sah-raytracer/pkg/output"
)

// Environment variable names
const (
	EnvOutputDir     = "RAYTRACER_OUTPUT_DIR"
	EnvWorkers       = "RAYTRACER_WORKERS"
	EnvScenesDir     = "RAYTRACER_SCENES_DIR"
	EnvS3Endpoint    = "S3_ENDPOINT"
	EnvS3Region      = "S3_REGION"
	EnvS3Bucket      = "S3_BUCKET"
	EnvS3AccessKey   = "S3_ACCESS_KEY"
	EnvS3SecretKey   = "S3_SECRET_KEY"
	EnvServerAddress = "SERVER_ADDRESS"
)

// Config is the process-wide configuration read from the environment
type Config struct {
	OutputDir     string
	ScenesDir     string
	Workers       int // 0 selects one worker per logical CPU
	ServerAddress string
	S3            output.S3Config
}

// Defaults returns the configuration used when nothing is set
func Defaults() Config {
	return Config{
		OutputDir:     "output",
		ScenesDir:     "scenes",
		ServerAddress: ":8080",
		S3:            output.S3Config{Region: "us-east-1"},
	}
}

// Load reads the optional .env files and then the environment. Variables
// already present in the environment win over .env values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", file, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables on top of Defaults
func FromEnv() (Config, error) {
	cfg := Defaults()

	setString(&cfg.OutputDir, EnvOutputDir)
	setString(&cfg.ScenesDir, EnvScenesDir)
	setString(&cfg.ServerAddress, EnvServerAddress)
	setString(&cfg.S3.Endpoint, EnvS3Endpoint)
	setString(&cfg.S3.Region, EnvS3Region)
	setString(&cfg.S3.Bucket, EnvS3Bucket)
	setString(&cfg.S3.AccessKey, EnvS3AccessKey)
	setString(&cfg.S3.SecretKey, EnvS3SecretKey)

	if v := os.Getenv(EnvWorkers); v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil || workers < 0 {
			return Config{}, fmt.Errorf("%s must be a non-negative integer, got %q", EnvWorkers, v)
		}
		cfg.Workers = workers
	}

	return cfg, nil
}

// UploadEnabled reports whether enough S3 settings are present to upload
func (c Config) UploadEnabled() bool {
	return c.S3.Bucket != ""
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
