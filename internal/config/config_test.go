package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexicon/internal/llm"
	"github.com/abhisek/lexicon/internal/store"
)

// isolate points every lookup Load performs at an empty temp tree.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("LEXICON_DB", "")
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, store.DriverSQLite, cfg.Data.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "default", cfg.Session.Filter)
	assert.Equal(t, "dynamic", cfg.Session.Quiz)
	assert.Equal(t, "", cfg.LLM.Provider)
	assert.Equal(t, "claude-haiku", cfg.LLM.Anthropic.Model)
	assert.Equal(t, llm.DefaultOpenRouterURL, cfg.LLM.OpenRouter.BaseURL)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
  format: json
session:
  filter: hard
  quiz: spelling
llm:
  provider: openai
  openai:
    model: gpt-4o
`), 0o644))

	t.Setenv("LEXICON_LOG_LEVEL", "warn")
	t.Setenv("LEXICON_LLM_OPENAI_API_KEY", "sk-test")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level, "env beats file")
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "hard", cfg.Session.Filter)
	assert.Equal(t, "spelling", cfg.Session.Quiz)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.NoError(t, cfg.LLM.Validate())
}

func TestLoadXDGConfigAndDotEnv(t *testing.T) {
	dir := isolate(t)
	cfgDir := filepath.Join(dir, "config", "lexicon")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("session:\n  filter: today\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ANTHROPIC_API_KEY=sk-ant-env\n"), 0o644))
	// godotenv never overrides a variable that is already set, even to "".
	os.Unsetenv("ANTHROPIC_API_KEY")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "today", cfg.Session.Filter)
	assert.Equal(t, llm.ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "sk-ant-env", cfg.LLM.Anthropic.APIKey)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad driver", "data:\n  driver: oracle\n"},
		{"postgres without dsn", "data:\n  driver: postgres\n"},
		{"bad filter", "session:\n  filter: sometimes\n"},
		{"bad quiz", "session:\n  quiz: crossword\n"},
		{"bad format", "log:\n  format: xml\n"},
		{"malformed yaml", "log: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestDataSource(t *testing.T) {
	dir := isolate(t)

	driver, dsn, err := DataConfig{Driver: store.DriverSQLite}.Source()
	require.NoError(t, err)
	assert.Equal(t, store.DriverSQLite, driver)
	assert.Equal(t, filepath.Join(dir, "data", "lexicon", "lexicon.db"), dsn)

	p := filepath.Join(dir, "custom", "words.db")
	_, dsn, err = DataConfig{Driver: store.DriverSQLite, Path: p}.Source()
	require.NoError(t, err)
	assert.Equal(t, p, dsn)
	assert.DirExists(t, filepath.Dir(p))

	driver, dsn, err = DataConfig{Driver: store.DriverPostgres, DSN: "postgres://u@h/db"}.Source()
	require.NoError(t, err)
	assert.Equal(t, store.DriverPostgres, driver)
	assert.Equal(t, "postgres://u@h/db", dsn)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	_, err = NewLogger(LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lexicon.log")
	logger, err := NewLogger(LogConfig{Level: "info", Format: "text", File: path})
	require.NoError(t, err)
	logger.WithField("word", "lucid").Info("answered")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "answered")
	assert.Contains(t, string(b), "word=lucid")
}

func TestDefaultLogPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	p, err := DefaultLogPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/state/lexicon/lexicon.log", p)
}
