package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort string `yaml:"APP_PORT"`
	AppEnv  string `yaml:"APP_ENV"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	JWTSecret string `yaml:"JWT_SECRET"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Recipe search
	RecipeSearchCaseSensitive bool `yaml:"RECIPE_SEARCH_CASE_SENSITIVE"`
}

var config Config

// LoadConfig reads config.yaml from the working directory. Environment variables
// with the same key win over file values.
func LoadConfig() {
	LoadConfigFile("config.yaml")
}

func LoadConfigFile(path string) {
	config = Config{}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	overrideFromEnv(&config)
}

func overrideFromEnv(c *Config) {
	for key, target := range map[string]*string{
		"APP_PORT":       &c.AppPort,
		"APP_ENV":        &c.AppEnv,
		"DB_USER":        &c.DBUser,
		"DB_NAME":        &c.DBName,
		"DB_PASSWORD":    &c.DBPassword,
		"DB_PORT":        &c.DBPort,
		"DB_HOST":        &c.DBHost,
		"JWT_SECRET":     &c.JWTSecret,
		"AWS_S3_BUCKET":  &c.AWSS3Bucket,
		"AWS_S3_REGION":  &c.AWSS3Region,
		"AWS_ACCESS_KEY": &c.AWSAccessKey,
		"AWS_SECRET_KEY": &c.AWSSecretKey,
	} {
		if v, ok := os.LookupEnv(key); ok {
			*target = v
		}
	}

	if v, ok := os.LookupEnv("RECIPE_SEARCH_CASE_SENSITIVE"); ok {
		c.RecipeSearchCaseSensitive = v == "true" || v == "1"
	}

	if c.AppPort == "" {
		c.AppPort = "8000"
	}
	if c.AppEnv == "" {
		c.AppEnv = "development"
	}
}

func getBoolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_ENV":
		return config.AppEnv
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
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "RECIPE_SEARCH_CASE_SENSITIVE":
		return getBoolString(config.RecipeSearchCaseSensitive)
	default:
		return ""
	}
}
