// Package config provides configuration loading for servicekit applications.
//
// It uses Viper to load configuration from YAML files and environment
// variables, with .env file support via godotenv. Client settings for the
// user, notification, and payment services live under the clients section
// and convert directly into httpclient configs.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("my-service", &cfg)
//
// Environment variables override file values using underscore-separated
// paths (e.g., CLIENTS_USER_BASE_URL).
package config
