package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-core-fx/config"
)

type http struct {
	Address     string   `koanf:"address"`
	ProxyHeader string   `koanf:"proxy_header"`
	Proxies     []string `koanf:"proxies"`

	OpenAPI openAPIConfig `koanf:"openapi"`
}

type openAPIConfig struct {
	Enabled    bool   `koanf:"enabled"`
	PublicHost string `koanf:"public_host"`
	PublicPath string `koanf:"public_path"`
}

type storageConfig struct {
	InMemory bool   `koanf:"in_memory"`
	DataDir  string `koanf:"data_dir"`
}

type buildConfig struct {
	Command   string        `koanf:"command"`
	WorkDir   string        `koanf:"work_dir"`
	OutputDir string        `koanf:"output_dir"`
	Shell     string        `koanf:"shell"`
	Timeout   time.Duration `koanf:"timeout"`
}

type trackerConfig struct {
	Retention time.Duration `koanf:"retention"`
}

type deployConfig struct {
	MaxParallel    int           `koanf:"max_parallel"`
	AdapterTimeout time.Duration `koanf:"adapter_timeout"`
	ProjectPrefix  string        `koanf:"project_prefix"`
}

type providersConfig struct {
	Endpoints   map[string]string `koanf:"endpoints"`
	HTTPTimeout time.Duration     `koanf:"http_timeout"`
}

type gitConfig struct {
	Timeout     time.Duration `koanf:"timeout"`
	AuthorName  string        `koanf:"author_name"`
	AuthorEmail string        `koanf:"author_email"`
}

type Config struct {
	HTTP http `koanf:"http"`

	Storage   storageConfig   `koanf:"storage"`
	Build     buildConfig     `koanf:"build"`
	Tracker   trackerConfig   `koanf:"tracker"`
	Deploy    deployConfig    `koanf:"deploy"`
	Providers providersConfig `koanf:"providers"`
	Git       gitConfig       `koanf:"git"`
}

func Default() Config {
	//nolint:exhaustruct,mnd //default values
	return Config{
		HTTP: http{
			Address:     "127.0.0.1:3000",
			ProxyHeader: "X-Forwarded-For",
			Proxies:     []string{},
			OpenAPI: openAPIConfig{
				Enabled: true,
			},
		},

		Storage: storageConfig{
			InMemory: true,
			DataDir:  "./data",
		},

		Build: buildConfig{
			Command:   "npm run build",
			WorkDir:   ".",
			OutputDir: "dist",
			Shell:     "sh",
			Timeout:   10 * time.Minute,
		},

		Deploy: deployConfig{
			AdapterTimeout: 10 * time.Minute,
			ProjectPrefix:  "maya-web",
		},

		Providers: providersConfig{
			Endpoints:   map[string]string{},
			HTTPTimeout: 2 * time.Minute,
		},

		Git: gitConfig{
			Timeout:     5 * time.Minute,
			AuthorName:  "udeploy",
			AuthorEmail: "deploy@udeploy.local",
		},
	}
}

func New() (Config, error) {
	cfg := Default()

	options := []config.Option{}
	if yamlPath := os.Getenv("CONFIG_PATH"); yamlPath != "" {
		options = append(options, config.WithLocalYAML(yamlPath))
	}

	if err := config.Load(&cfg, options...); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}
