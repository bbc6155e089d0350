// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the design studio configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Agent names that accept parameter overrides.
const (
	RootAgent      = "root_agent"
	ImageGenAgent  = "image_gen_agent"
	ImageEditAgent = "image_edit_agent"
	GCSAgent       = "gcs_agent"
)

// Config is the design studio configuration.
type Config struct {
	App       AppConfig
	Google    GoogleConfig
	Anthropic AnthropicConfig
	Agents    AgentsConfig
	Tools     ToolsConfig
	Storage   StorageConfig
	Artifacts ArtifactsConfig
}

type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"design_studio"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"text"`
	MaxLLMCalls int    `envconfig:"MAX_LLM_CALLS" default:"500"`
}

type GoogleConfig struct {
	Project     string `envconfig:"GOOGLE_CLOUD_PROJECT"`
	Location    string `envconfig:"GOOGLE_CLOUD_LOCATION" default:"us-central1"`
	APIKey      string `envconfig:"GOOGLE_API_KEY"`
	UseVertexAI bool   `envconfig:"GOOGLE_GENAI_USE_VERTEXAI" default:"true"`
}

type AnthropicConfig struct {
	APIKey string `envconfig:"ANTHROPIC_API_KEY"`
	Region string `envconfig:"CLAUDE_VERTEX_REGION" default:"us-east5"`
}

// AgentParams are the model parameters of one agent.
type AgentParams struct {
	Model           string   `toml:"model"`
	Temperature     *float32 `toml:"temperature"`
	MaxOutputTokens *int32   `toml:"max_output_tokens"`
}

type AgentsConfig struct {
	RootModel      string  `envconfig:"ROOT_AGENT_MODEL" default:"gemini-2.5-flash"`
	GCSModel       string  `envconfig:"GCS_AGENT_MODEL" default:"gemini-2.5-flash"`
	ImageGenModel  string  `envconfig:"IMAGE_GEN_AGENT_MODEL" default:"gemini-2.5-flash"`
	ImageEditModel string  `envconfig:"IMAGE_EDIT_AGENT_MODEL" default:"gemini-2.5-flash"`
	Temperature    float32 `envconfig:"AGENT_TEMPERATURE" default:"0.3"`
	MaxTokens      int32   `envconfig:"AGENT_MAX_TOKENS" default:"4096"`

	// File is an optional TOML file with per-agent overrides:
	//
	//	[agents.image_gen_agent]
	//	model = "gemini-2.5-pro"
	//	temperature = 0.2
	File string `envconfig:"AGENTS_CONFIG_FILE"`

	overrides map[string]AgentParams
}

// Params returns the resolved parameters of the named agent.
func (c AgentsConfig) Params(name string) AgentParams {
	temperature := c.Temperature
	maxTokens := c.MaxTokens
	p := AgentParams{
		Temperature:     &temperature,
		MaxOutputTokens: &maxTokens,
	}
	switch name {
	case RootAgent:
		p.Model = c.RootModel
	case ImageGenAgent:
		p.Model = c.ImageGenModel
	case ImageEditAgent:
		p.Model = c.ImageEditModel
	case GCSAgent:
		p.Model = c.GCSModel
	}

	o, ok := c.overrides[name]
	if !ok {
		return p
	}
	if o.Model != "" {
		p.Model = o.Model
	}
	if o.Temperature != nil {
		p.Temperature = o.Temperature
	}
	if o.MaxOutputTokens != nil {
		p.MaxOutputTokens = o.MaxOutputTokens
	}
	return p
}

type ToolsConfig struct {
	ImageGenerationModel      string `envconfig:"IMAGE_GENERATION_TOOL_MODEL" default:"gemini-2.5-flash-image"`
	ImageEditModel            string `envconfig:"IMAGE_EDIT_TOOL_MODEL" default:"gemini-2.5-flash-image"`
	BackgroundFastModel       string `envconfig:"IMAGE_BACKGROUND_FAST_TOOL_MODEL" default:"imagen-3.0-capability-001"`
	BackgroundCapabilityModel string `envconfig:"IMAGE_BACKGROUND_CAPABILITY_TOOL_MODEL" default:"imagen-3.0-capability-001"`

	// RequestsPerMinute paces calls to the image APIs. Zero disables pacing.
	RequestsPerMinute int `envconfig:"IMAGE_REQUESTS_PER_MINUTE" default:"0"`
}

type StorageConfig struct {
	SKUDataBucket      string `envconfig:"GCS_BUCKET_SKU_DATA"`
	AgentOutputsBucket string `envconfig:"GCS_BUCKET_AGENT_OUTPUTS"`
	ImagePrefix        string `envconfig:"GCS_IMAGE_PREFIX" default:"high_resolution_images"`
	MaxImageSize       string `envconfig:"MAX_IMAGE_SIZE" default:"20MB"`

	// SKUFilePath is the JSON product catalogue inside SKUDataBucket.
	SKUFilePath string `envconfig:"GCS_SKU_FILE_PATH" default:"sku_data/skus.json"`

	maxImageSizeVal int64
}

// MaxImageSizeBytes returns MaxImageSize parsed by [Config.Validate].
func (c StorageConfig) MaxImageSizeBytes() int64 {
	return c.maxImageSizeVal
}

type ArtifactsConfig struct {
	Backend     string        `envconfig:"ARTIFACT_BACKEND" default:"memory"`
	GCSBucket   string        `envconfig:"ARTIFACT_GCS_BUCKET"`
	RedisURL    string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	RedisPrefix string        `envconfig:"ARTIFACT_REDIS_PREFIX" default:"design_studio"`
	TTL         time.Duration `envconfig:"ARTIFACT_TTL" default:"0s"`
}

// Load reads the dotenv files, then the environment, then the agents file.
//
// Without files, a .env file in the working directory is loaded if it exists.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}

	cfg.Artifacts.Backend = strings.ToLower(strings.TrimSpace(cfg.Artifacts.Backend))

	if cfg.Agents.File != "" {
		overrides, err := loadAgentsFile(cfg.Agents.File)
		if err != nil {
			return nil, err
		}
		cfg.Agents.overrides = overrides
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadAgentsFile(path string) (map[string]AgentParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agents config: %w", err)
	}

	var file struct {
		Agents map[string]AgentParams `toml:"agents"`
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse agents config: %w", err)
	}

	for name := range file.Agents {
		switch name {
		case RootAgent, ImageGenAgent, ImageEditAgent, GCSAgent:
		default:
			return nil, fmt.Errorf("agents config: unknown agent %q", name)
		}
	}
	return file.Agents, nil
}

// Validate checks the configuration and parses derived values.
func (c *Config) Validate() error {
	var errs []error

	switch {
	case c.Google.UseVertexAI && c.Google.Project == "":
		errs = append(errs, errors.New("GOOGLE_CLOUD_PROJECT is required when GOOGLE_GENAI_USE_VERTEXAI is true"))
	case !c.Google.UseVertexAI && c.Google.APIKey == "":
		errs = append(errs, errors.New("GOOGLE_API_KEY is required when GOOGLE_GENAI_USE_VERTEXAI is false"))
	}

	switch c.Artifacts.Backend {
	case "memory", "redis":
	case "gcs":
		if c.Artifacts.GCSBucket == "" {
			errs = append(errs, errors.New("ARTIFACT_GCS_BUCKET is required for the gcs artifact backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown artifact backend %q", c.Artifacts.Backend))
	}

	size, err := units.FromHumanSize(c.Storage.MaxImageSize)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("invalid MAX_IMAGE_SIZE: %w", err))
	case size <= 0:
		errs = append(errs, errors.New("MAX_IMAGE_SIZE must be positive"))
	default:
		c.Storage.maxImageSizeVal = size
	}

	return errors.Join(errs...)
}

// HumanMaxImageSize formats the image size limit for logs.
func (c StorageConfig) HumanMaxImageSize() string {
	return units.HumanSize(float64(c.maxImageSizeVal))
}
