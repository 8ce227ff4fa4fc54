package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/ironsheep/doodle-guess-mcp/internal/imaging"
	"github.com/ironsheep/doodle-guess-mcp/internal/ocr"
	"github.com/ironsheep/doodle-guess-mcp/internal/recognizer"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "doodle-mcp"

	// DefaultProfile is the richer of the two scoring profiles.
	DefaultProfile = "enhanced"

	// DefaultTopK matches the five guesses a drawing game shows.
	DefaultTopK = recognizer.DefaultTopK

	// DefaultMaxSide bounds the longer side of a sketch before extraction.
	// Canvas exports are rarely larger, and extraction cost grows with area.
	DefaultMaxSide = 512
)

// Config holds every tunable of the server and CLI. It is loaded once at
// startup and passed down explicitly.
type Config struct {
	// Profile is the scoring profile name: basic, enhanced, or an alias.
	Profile string `yaml:"profile"`

	// TopK limits how many predictions are reported. 0 reports all.
	TopK int `yaml:"top_k"`

	// MinProbability hides predictions at or below this probability.
	MinProbability float64 `yaml:"min_probability"`

	// MaxSide downscales larger images before extraction. 0 disables.
	MaxSide int `yaml:"max_side"`

	// Handwriting configures the OCR classifier tried before the heuristics.
	Handwriting Handwriting `yaml:"handwriting"`

	// Overlay styles the annotate output.
	Overlay imaging.OverlayStyle `yaml:"overlay"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// Handwriting configures reading written labels with Tesseract.
type Handwriting struct {
	Enabled        bool    `yaml:"enabled"`
	Language       string  `yaml:"language"`
	TessdataPrefix string  `yaml:"tessdata_prefix"`
	MinConfidence  float64 `yaml:"min_confidence"`
}

// Default returns a Config with every field at its default.
func Default() *Config {
	return &Config{
		Profile: DefaultProfile,
		TopK:    DefaultTopK,
		MaxSide: DefaultMaxSide,
		Handwriting: Handwriting{
			Language:      ocr.DefaultLanguage,
			MinConfidence: 0.5,
		},
		Overlay: imaging.DefaultOverlayStyle(),
	}
}

// XDGConfigDir returns the XDG config directory for the application.
// On Linux: ~/.config/doodle-mcp
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if _, err := recognizer.ProfileByName(c.Profile); err != nil {
		return ErrInvalidProfile
	}
	if c.TopK < 0 {
		return ErrInvalidTopK
	}
	if c.MinProbability < 0 || c.MinProbability > 1 {
		return ErrInvalidProbability
	}
	if c.Handwriting.MinConfidence < 0 || c.Handwriting.MinConfidence > 1 {
		return ErrInvalidProbability
	}
	if c.MaxSide < 0 {
		return ErrInvalidMaxSide
	}
	return nil
}

// ScoringProfile resolves the configured profile.
func (c *Config) ScoringProfile() (*recognizer.Profile, error) {
	p, err := recognizer.ProfileByName(c.Profile)
	if err != nil {
		return nil, ErrInvalidProfile
	}
	return p, nil
}

// Classifier builds the classifier chain for a profile: the handwriting
// reader first when enabled, then the heuristic profile.
func (c *Config) Classifier(p *recognizer.Profile) recognizer.Classifier {
	if !c.Handwriting.Enabled {
		return p
	}
	reader := ocr.NewReader(p.Vocabulary(), ocr.Options{
		Language:       c.Handwriting.Language,
		TessdataPrefix: c.Handwriting.TessdataPrefix,
		MinConfidence:  c.Handwriting.MinConfidence,
	})
	return recognizer.Fallback{reader, p}
}
