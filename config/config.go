// Package config loads the mirror configuration from a YAML file with
// MIRROR_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Service struct {
	URL string `mapstructure:"url"`
}

type Services struct {
	Camera    Service `mapstructure:"camera"`
	Face      Service `mapstructure:"face"`
	Speech    Service `mapstructure:"speech"`
	Sentiment Service `mapstructure:"sentiment"`
}

type Camera struct {
	FrameIntervalMS int `mapstructure:"frame_interval_ms"`
	ClassifyEvery   int `mapstructure:"classify_every"`
}

type Audio struct {
	Calibrate       bool `mapstructure:"calibrate"`
	ListenTimeoutMS int  `mapstructure:"listen_timeout_ms"`
}

type Session struct {
	HistoryLimit int `mapstructure:"history_limit"`
}

type Server struct {
	Addr string `mapstructure:"addr"`
}

type Root struct {
	Pipeline struct {
		Name   string `mapstructure:"name"`
		LogLvl string `mapstructure:"log_level"`
	} `mapstructure:"pipeline"`
	Camera    Camera   `mapstructure:"camera"`
	Audio     Audio    `mapstructure:"audio"`
	Services  Services `mapstructure:"services"`
	Session   Session  `mapstructure:"session"`
	Server    Server   `mapstructure:"server"`
	HTTPWaitS int      `mapstructure:"http_timeout_s"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.name", "empathy-mirror")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("camera.frame_interval_ms", 50)
	v.SetDefault("camera.classify_every", 4)
	v.SetDefault("audio.calibrate", true)
	v.SetDefault("audio.listen_timeout_ms", 8000)
	v.SetDefault("services.camera.url", "http://localhost:9001")
	v.SetDefault("services.face.url", "http://localhost:9002")
	v.SetDefault("services.speech.url", "http://localhost:9003")
	v.SetDefault("services.sentiment.url", "")
	v.SetDefault("session.history_limit", 500)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("http_timeout_s", 30)
}

// Load reads the config file at path, or the default search locations when
// path is empty. A missing file is fine; defaults and env apply.
func Load(path string) (*Root, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MIRROR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("mirror")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the scheduler cannot run with.
func (c *Root) Validate() error {
	if c.Camera.FrameIntervalMS <= 0 {
		return fmt.Errorf("camera.frame_interval_ms must be positive, got %d", c.Camera.FrameIntervalMS)
	}
	if c.Camera.ClassifyEvery < 1 {
		return fmt.Errorf("camera.classify_every must be >= 1, got %d", c.Camera.ClassifyEvery)
	}
	if c.Audio.ListenTimeoutMS <= 0 {
		return fmt.Errorf("audio.listen_timeout_ms must be positive, got %d", c.Audio.ListenTimeoutMS)
	}
	if c.Session.HistoryLimit < 1 {
		return fmt.Errorf("session.history_limit must be >= 1, got %d", c.Session.HistoryLimit)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Services.Camera.URL == "" {
		return fmt.Errorf("services.camera.url must not be empty")
	}
	if c.Services.Face.URL == "" {
		return fmt.Errorf("services.face.url must not be empty")
	}
	if c.Services.Speech.URL == "" {
		return fmt.Errorf("services.speech.url must not be empty")
	}
	return nil
}

// FrameInterval is the visual worker tick period.
func (c *Root) FrameInterval() time.Duration {
	return time.Duration(c.Camera.FrameIntervalMS) * time.Millisecond
}

// ListenTimeout bounds one speech listen call.
func (c *Root) ListenTimeout() time.Duration {
	return time.Duration(c.Audio.ListenTimeoutMS) * time.Millisecond
}

// HTTPTimeout bounds a model-service call; it must exceed the listen window.
func (c *Root) HTTPTimeout() time.Duration {
	t := time.Duration(c.HTTPWaitS) * time.Second
	if t <= c.ListenTimeout() {
		t = c.ListenTimeout() + 5*time.Second
	}
	return t
}
