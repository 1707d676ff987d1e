package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Service struct {
	URL     string `yaml:"url"`
	Model   string `yaml:"model,omitempty"`
	Timeout int    `yaml:"timeout"` // seconds
}
type Services struct {
	Diarization Service `yaml:"diarization"`
	Metric      Service `yaml:"metric"`
}
type Evaluation struct {
	AudioExt     string  `yaml:"audio_ext"`
	ReferenceExt string  `yaml:"reference_ext"`
	Collar       float64 `yaml:"collar"`
	SkipOverlap  bool    `yaml:"skip_overlap"`
}
type Root struct {
	Pipeline struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
		LogLvl  string `yaml:"log_level"`
	} `yaml:"pipeline"`
	Services   Services   `yaml:"services"`
	Evaluation Evaluation `yaml:"evaluation"`
	Paths      struct {
		Audio      string `yaml:"audio"`
		References string `yaml:"references"`
		Outputs    string `yaml:"outputs"`
	} `yaml:"paths"`
}

// Load decodes the YAML file at path. With an empty path it tries
// config/$CONFIG_ENV/config.yaml then config.yaml, and falls back to
// defaults when neither exists.
func Load(path string) (*Root, error) {
	if path != "" {
		return decodeFile(path)
	}
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	guess := []string{
		filepath.Join("config", env, "config.yaml"),
		"config.yaml",
	}
	for _, p := range guess {
		cfg, err := decodeFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	cfg := &Root{}
	cfg.applyDefaults()
	return cfg, nil
}

func decodeFile(path string) (*Root, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var cfg Root
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Root) applyDefaults() {
	if c.Pipeline.Name == "" {
		c.Pipeline.Name = "dereval"
	}
	if c.Pipeline.LogLvl == "" {
		c.Pipeline.LogLvl = "info"
	}
	if c.Evaluation.AudioExt == "" {
		c.Evaluation.AudioExt = ".wav"
	}
	if c.Evaluation.ReferenceExt == "" {
		c.Evaluation.ReferenceExt = ".rttm"
	}
	if c.Paths.Outputs == "" {
		c.Paths.Outputs = "results"
	}
	if c.Services.Diarization.Timeout == 0 {
		c.Services.Diarization.Timeout = 600
	}
	if c.Services.Metric.Timeout == 0 {
		c.Services.Metric.Timeout = 60
	}
}

// Override keys, settable by flag or DEREVAL_* environment variable.
const (
	KeyAudioDir       = "audio_dir"
	KeyReferenceDir   = "reference_dir"
	KeyOutputDir      = "output_dir"
	KeyDiarizationURL = "diarization_url"
	KeyModel          = "model"
	KeyMetricURL      = "metric_url"
	KeyLogLevel       = "log_level"
	KeyCollar         = "collar"
	KeySkipOverlap    = "skip_overlap"
)

// Override copies every key set in v over the file values.
func (c *Root) Override(v *viper.Viper) {
	str := map[string]*string{
		KeyAudioDir:       &c.Paths.Audio,
		KeyReferenceDir:   &c.Paths.References,
		KeyOutputDir:      &c.Paths.Outputs,
		KeyDiarizationURL: &c.Services.Diarization.URL,
		KeyModel:          &c.Services.Diarization.Model,
		KeyMetricURL:      &c.Services.Metric.URL,
		KeyLogLevel:       &c.Pipeline.LogLvl,
	}
	for k, dst := range str {
		if v.IsSet(k) && v.GetString(k) != "" {
			*dst = v.GetString(k)
		}
	}
	if v.IsSet(KeyCollar) {
		c.Evaluation.Collar = v.GetFloat64(KeyCollar)
	}
	if v.IsSet(KeySkipOverlap) {
		c.Evaluation.SkipOverlap = v.GetBool(KeySkipOverlap)
	}
}

// Validate checks the settings a full evaluation pass needs.
func (c *Root) Validate() error {
	switch {
	case c.Paths.Audio == "":
		return errors.New("config: paths.audio is required")
	case c.Paths.References == "":
		return errors.New("config: paths.references is required")
	case c.Services.Diarization.URL == "":
		return errors.New("config: services.diarization.url is required")
	case c.Services.Metric.URL == "":
		return errors.New("config: services.metric.url is required")
	}
	return nil
}

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }
