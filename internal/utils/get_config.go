package utils

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort  string `yaml:"APP_PORT"`
	AppEnv   string `yaml:"APP_ENV"`
	LogLevel string `yaml:"LOG_LEVEL"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION"`
	AWSS3Endpoint string `yaml:"AWS_S3_ENDPOINT"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY"`

	// Local flag store
	FlagStorePath string `yaml:"FLAG_STORE_PATH"`

	// Observability
	TracingEnabled bool   `yaml:"TRACING_ENABLED"`
	JaegerEndpoint string `yaml:"JAEGER_ENDPOINT"`

	// Inventory
	BulkConcurrency int `yaml:"BULK_CONCURRENCY"`
}

var (
	config     Config
	configOnce sync.Once
)

// LoadConfig reads config.yaml, then lets a .env file and the process
// environment override individual keys. Only the first call has an effect.
func LoadConfig() {
	configOnce.Do(func() {
		loadConfigFile("config.yaml")
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("Error reading .env file: %s\n", err)
		}
		applyEnv(&config)
	})
}

func loadConfigFile(path string) {
	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}
}

func applyEnv(c *Config) {
	strs := map[string]*string{
		"APP_PORT":           &c.AppPort,
		"APP_ENV":            &c.AppEnv,
		"LOG_LEVEL":          &c.LogLevel,
		"DB_USER":            &c.DBUser,
		"DB_NAME":            &c.DBName,
		"DB_PASSWORD":        &c.DBPassword,
		"DB_PORT":            &c.DBPort,
		"DB_HOST":            &c.DBHost,
		"JWT_SECRET":         &c.JWTSecret,
		"APP_URL":            &c.AppURL,
		"SMTP_HOST":          &c.SMTPHost,
		"SMTP_PORT":          &c.SMTPPort,
		"SMTP_SENDER_NAME":   &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": &c.SMTPAuthPassword,
		"AWS_S3_BUCKET":      &c.AWSS3Bucket,
		"AWS_S3_REGION":      &c.AWSS3Region,
		"AWS_S3_ENDPOINT":    &c.AWSS3Endpoint,
		"AWS_ACCESS_KEY":     &c.AWSAccessKey,
		"AWS_SECRET_KEY":     &c.AWSSecretKey,
		"FLAG_STORE_PATH":    &c.FlagStorePath,
		"JAEGER_ENDPOINT":    &c.JaegerEndpoint,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("TRACING_ENABLED"); ok {
		c.TracingEnabled, _ = strconv.ParseBool(v)
	}
	if v, ok := os.LookupEnv("BULK_CONCURRENCY"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.BulkConcurrency = n
		}
	}
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		if config.AppPort == "" {
			return "8080"
		}
		return config.AppPort
	case "APP_ENV":
		if config.AppEnv == "" {
			return "development"
		}
		return config.AppEnv
	case "LOG_LEVEL":
		return config.LogLevel
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "APP_URL":
		return config.AppURL
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_S3_ENDPOINT":
		return config.AWSS3Endpoint
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "FLAG_STORE_PATH":
		if config.FlagStorePath == "" {
			return "./data/flags"
		}
		return config.FlagStorePath
	case "TRACING_ENABLED":
		return strconv.FormatBool(config.TracingEnabled)
	case "JAEGER_ENDPOINT":
		return config.JaegerEndpoint
	case "BULK_CONCURRENCY":
		if config.BulkConcurrency <= 0 {
			return "4"
		}
		return strconv.Itoa(config.BulkConcurrency)
	default:
		return ""
	}
}

// GetConfigInt returns the integer value of key or def when the value is
// missing or malformed.
func GetConfigInt(key string, def int) int {
	n, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return def
	}
	return n
}

func GetConfigBool(key string) bool {
	b, _ := strconv.ParseBool(GetConfig(key))
	return b
}
