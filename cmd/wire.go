package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/zprov/internal/adapters/billing/zenskar"
	summaryadapter "github.com/bnema/zprov/internal/adapters/render/summary"
	"github.com/bnema/zprov/internal/adapters/repo/planfile"
	"github.com/bnema/zprov/internal/application"
	"github.com/bnema/zprov/internal/ports"
	"github.com/spf13/viper"
)

const (
	configKeyBaseURL  = "api.base_url"
	configKeyTimeout  = "api.timeout"
	configKeyPlanPath = "plan.path"
)

type app struct {
	plans           ports.PlanRepository
	summaryRenderer func(application.Report, summaryadapter.RenderOptions) (string, error)
	newBilling      func(zenskar.Config) (ports.BillingAPI, error)
	clock           ports.Clock
	config          config
	verbose         bool
}

type config struct {
	BaseURL  string
	Timeout  time.Duration
	PlanPath string
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := loadConfig(viper.New(), filepath.Join(homeDir, ".zprov"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &app{
		plans:           planfile.NewRepository(),
		summaryRenderer: summaryadapter.Render,
		newBilling:      newZenskarBilling,
		clock:           ports.SystemClock{},
		config:          cfg,
	}, nil
}

func loadConfig(v *viper.Viper, configDir string) (config, error) {
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("ZPROV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(configKeyBaseURL, zenskar.DefaultBaseURL)
	v.SetDefault(configKeyTimeout, zenskar.DefaultTimeout)
	v.SetDefault(configKeyPlanPath, "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	timeout := v.GetDuration(configKeyTimeout)
	if timeout <= 0 {
		return config{}, fmt.Errorf("%s must be a positive duration, got %q", configKeyTimeout, v.GetString(configKeyTimeout))
	}

	return config{
		BaseURL:  strings.TrimSpace(v.GetString(configKeyBaseURL)),
		Timeout:  timeout,
		PlanPath: strings.TrimSpace(v.GetString(configKeyPlanPath)),
	}, nil
}

func newZenskarBilling(cfg zenskar.Config) (ports.BillingAPI, error) {
	client, err := zenskar.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return client, nil
}
