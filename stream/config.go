package stream

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	DefaultFrameRate = 30.0
	DefaultClientID  = "animseq"
)

// Config is the streamer configuration file.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientId"`
		Topics   struct {
			Stream string `yaml:"stream"`
			Styles string `yaml:"styles"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	FrameRate float64 `yaml:"frameRate"`
	Listen    string  `yaml:"listen"`
}

// DecodeConfig reads a YAML config and fills in defaults.
func DecodeConfig(r io.Reader) (Config, error) {
	var c Config
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&c); err != nil && err != io.EOF {
		return c, fmt.Errorf("decode config: %w", err)
	}
	if c.FrameRate <= 0 {
		c.FrameRate = DefaultFrameRate
	}
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = DefaultClientID
	}
	if c.Mqtt.Topics.Stream == "" {
		c.Mqtt.Topics.Stream = "animseq/stream"
	}
	if c.Mqtt.Topics.Styles == "" {
		c.Mqtt.Topics.Styles = "animseq/styles"
	}
	return c, nil
}

// ReadConfig reads the config file at path.
func ReadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return DecodeConfig(f)
}
