// Package config loads toolkit settings and declarative form definitions
// with viper. A form definition is a named rule set with its messages:
//
//	forms:
//	  signup:
//	    rules:
//	      email: required,email
//	      age: required,gte={minAge}
//	    messages:
//	      email.required: we need your email
//
// Keys are read case-insensitively, so field names should be snake_case.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/shadowofcards/go-formvalidator/form"
	"github.com/shadowofcards/go-formvalidator/logging"
)

// keyDelimiter replaces viper's "." so message ids like "email.required"
// survive as flat keys.
const keyDelimiter = "::"

var ErrUnknownForm = errors.New("config: unknown form")

type Config struct {
	LogLevel    string                `mapstructure:"log_level"`
	Development bool                  `mapstructure:"development"`
	TagName     string                `mapstructure:"tag_name"`
	Forms       map[string]FormConfig `mapstructure:"forms"`
}

type FormConfig struct {
	RuleSet    map[string]string `mapstructure:"rules"`
	MessageSet map[string]string `mapstructure:"messages"`
}

var _ form.RuleProvider = FormConfig{}

func (f FormConfig) Rules() form.Rules       { return form.Rules(f.RuleSet) }
func (f FormConfig) Messages() form.Messages { return form.Messages(f.MessageSet) }

// NewViper reads file (".env" when empty) if it exists and layers the
// environment on top.
func NewViper(file string) *viper.Viper {
	if file == "" {
		file = ".env"
	}
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetDefault("log_level", "info")
	v.SetDefault("tag_name", form.DefaultTagName)
	v.SetConfigFile(file)
	_ = v.ReadInConfig()
	v.AutomaticEnv()
	return v
}

func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Form(name string) (FormConfig, error) {
	f, ok := c.Forms[name]
	if !ok {
		return FormConfig{}, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
	return f, nil
}

func (c *Config) LoggerOptions() []logging.Option {
	opts := []logging.Option{logging.WithLevel(c.LogLevel)}
	if c.Development {
		opts = append(opts, logging.WithDevelopmentEncoder())
	}
	return opts
}

// FormOptions returns the form options implied by the loaded settings.
func (c *Config) FormOptions() []form.Option {
	if c.TagName == "" {
		return nil
	}
	return []form.Option{form.WithTagName(c.TagName)}
}
