// Package config loads dashboard settings from .outbreak.yaml, the
// environment and an optional .env file.
package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/outbreak/pkg/api"
)

// PollInterval is how often the status feed is refreshed.
const PollInterval = 5 * time.Minute

// DefaultDiseases are the diseases the backend ships models for.
var DefaultDiseases = []string{"Dengue", "Influenza", "Typhoid", "Malaria"}

const (
	keyAPIURL    = "api.url"
	keyTimeout   = "api.timeout"
	keyDiseases  = "diseases"
	keyDownloads = "downloads"
	keyLogFile   = "log.file"
)

type Config struct {
	APIURL    string
	Timeout   time.Duration
	Diseases  []string
	Downloads string
	LogFile   string

	v *viper.Viper
}

// Load reads the configuration. Missing files are not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	v.SetDefault(keyAPIURL, api.DefaultBaseURL)
	v.SetDefault(keyTimeout, "0s")
	v.SetDefault(keyDiseases, DefaultDiseases)
	v.SetDefault(keyDownloads, "~/Downloads")
	v.SetDefault(keyLogFile, "")
	v.SetConfigName(".outbreak") // .yaml is implicit
	v.SetEnvPrefix("OUTBREAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("OUTBREAK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	downloads, err := homedir.Expand(v.GetString(keyDownloads))
	if err != nil {
		return nil, err
	}
	logFile, err := homedir.Expand(v.GetString(keyLogFile))
	if err != nil {
		return nil, err
	}
	return &Config{
		APIURL:    v.GetString(keyAPIURL),
		Timeout:   v.GetDuration(keyTimeout),
		Diseases:  diseases(v.GetStringSlice(keyDiseases)),
		Downloads: downloads,
		LogFile:   logFile,
		v:         v,
	}, nil
}

// diseases accepts both a yaml list and a comma separated env value.
func diseases(in []string) []string {
	var out []string
	for _, d := range in {
		for _, part := range strings.Split(d, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultDiseases...)
	}
	return out
}

// Watch calls fn with the reloaded configuration whenever the config file
// changes. It does nothing when no file was found.
func (c *Config) Watch(fn func(*Config)) {
	if c.v == nil || c.v.ConfigFileUsed() == "" {
		return
	}
	c.v.OnConfigChange(func(e fsnotify.Event) {
		next, err := fromViper(c.v)
		if err != nil {
			log.Printf("reload %s: %v", e.Name, err)
			return
		}
		fn(next)
	})
	c.v.WatchConfig()
}

// File is the config file that was read, or "" when none was found.
func (c *Config) File() string {
	if c.v == nil {
		return ""
	}
	return c.v.ConfigFileUsed()
}

// Client returns a backend client for the configured API.
func (c *Config) Client() *api.Client {
	return api.New(c.APIURL, c.Timeout)
}
