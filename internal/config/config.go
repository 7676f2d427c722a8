package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"quizmaker/internal/logger"
)

// ErrNotFound is returned when no config file exists above the start directory.
var ErrNotFound = errors.New("config not found")

// Config is the project configuration.
type Config struct {
	Version       int          `mapstructure:"version" yaml:"version"`
	QuestionsFile string       `mapstructure:"questions_file" yaml:"questions_file"`
	ResultsDir    string       `mapstructure:"results_dir" yaml:"results_dir"`
	HistoryDB     string       `mapstructure:"history_db" yaml:"history_db"`
	Quiz          QuizConfig   `mapstructure:"quiz" yaml:"quiz"`
	Export        ExportConfig `mapstructure:"export" yaml:"export"`
	Serve         ServeConfig  `mapstructure:"serve" yaml:"serve"`
	UI            UIConfig     `mapstructure:"ui" yaml:"ui"`
	Log           LogConfig    `mapstructure:"log" yaml:"log"`

	// Root is the project root relative paths were resolved against.
	Root string `mapstructure:"-" yaml:"-"`
}

// QuizConfig holds the default selection criteria for run and export.
type QuizConfig struct {
	Count      int    `mapstructure:"count" yaml:"count"`
	Shuffle    bool   `mapstructure:"shuffle" yaml:"shuffle"`
	Section    string `mapstructure:"section" yaml:"section,omitempty"`
	Difficulty string `mapstructure:"difficulty" yaml:"difficulty,omitempty"`
}

type ExportConfig struct {
	Title            string `mapstructure:"title" yaml:"title"`
	QuestionsPerPage int    `mapstructure:"questions_per_page" yaml:"questions_per_page"`
	OutputDir        string `mapstructure:"output_dir" yaml:"output_dir"`
}

type ServeConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type UIConfig struct {
	Mode    string `mapstructure:"mode" yaml:"mode"`
	NoColor bool   `mapstructure:"no_color" yaml:"no_color"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	Env   string `mapstructure:"env" yaml:"env"`
}

// Logger converts the log section for logger.Initialize.
func (c LogConfig) Logger() logger.Config {
	return logger.Config{Level: c.Level, Env: c.Env}
}

// Default returns the configuration used when no file sets a key.
func Default() Config {
	return Config{
		Version:       1,
		QuestionsFile: DefaultQuestions,
		ResultsDir:    DefaultResultsDir,
		HistoryDB:     DefaultHistoryDB,
		Quiz:          QuizConfig{Count: 10, Shuffle: true},
		Export:        ExportConfig{Title: "Quiz", QuestionsPerPage: 0, OutputDir: DefaultExportDir},
		Serve:         ServeConfig{Addr: "127.0.0.1:8080"},
		UI:            UIConfig{Mode: "auto"},
		Log:           LogConfig{Level: "warn", Env: "development"},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("version", d.Version)
	v.SetDefault("questions_file", d.QuestionsFile)
	v.SetDefault("results_dir", d.ResultsDir)
	v.SetDefault("history_db", d.HistoryDB)
	v.SetDefault("quiz.count", d.Quiz.Count)
	v.SetDefault("quiz.shuffle", d.Quiz.Shuffle)
	v.SetDefault("quiz.section", d.Quiz.Section)
	v.SetDefault("quiz.difficulty", d.Quiz.Difficulty)
	v.SetDefault("export.title", d.Export.Title)
	v.SetDefault("export.questions_per_page", d.Export.QuestionsPerPage)
	v.SetDefault("export.output_dir", d.Export.OutputDir)
	v.SetDefault("serve.addr", d.Serve.Addr)
	v.SetDefault("ui.mode", d.UI.Mode)
	v.SetDefault("ui.no_color", d.UI.NoColor)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.env", d.Log.Env)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads, resolves and validates a config file. Environment variables
// prefixed with QUIZMAKER_ override file values.
func Load(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return finish(v, ProjectRootFromConfigPath(path))
}

// LoadDefaults builds a config from defaults and the environment only,
// rooted at root. Used when a project has no config file.
func LoadDefaults(root string) (Config, error) {
	return finish(newViper(), root)
}

func finish(v *viper.Viper, root string) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	Normalize(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	cfg.Root = root
	cfg.QuestionsFile = resolve(root, cfg.QuestionsFile)
	cfg.ResultsDir = resolve(root, cfg.ResultsDir)
	cfg.HistoryDB = resolve(root, cfg.HistoryDB)
	cfg.Export.OutputDir = resolve(root, cfg.Export.OutputDir)
	return cfg, nil
}

// Normalize trims and lower-cases enumerated values.
func Normalize(cfg *Config) {
	cfg.QuestionsFile = strings.TrimSpace(cfg.QuestionsFile)
	cfg.Quiz.Section = strings.TrimSpace(cfg.Quiz.Section)
	cfg.Quiz.Difficulty = strings.TrimSpace(cfg.Quiz.Difficulty)
	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Env = strings.ToLower(strings.TrimSpace(cfg.Log.Env))
}
