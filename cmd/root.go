package cmd

import (
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "proposal-draft"
)

// Config is the process-wide configuration, read once at startup. All
// fields are optional; the zero configuration runs the mock backend.
type Config struct {
	Server  *ServerConfig  `mapstructure:"server"`
	Backend *BackendConfig `mapstructure:"backend"`
	Prompt  *PromptConfig  `mapstructure:"prompt"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// BackendConfig selects the generation backend. Mode is "mock" or "live";
// in live mode Provider picks the endpoint flavor.
type BackendConfig struct {
	Mode         string        `mapstructure:"mode"`
	Provider     string        `mapstructure:"provider"`
	MaxLogLength int           `mapstructure:"max-log-length"`
	Ollama       *OllamaConfig `mapstructure:"ollama"`
	OpenAI       *OpenAIConfig `mapstructure:"openai"`
	Gemini       *GeminiConfig `mapstructure:"gemini"`
}

type OllamaConfig struct {
	BaseURL        string `mapstructure:"base-url"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout-seconds"`
}

type OpenAIConfig struct {
	BaseURL        string `mapstructure:"base-url"`
	Model          string `mapstructure:"model"`
	APIKeyFile     string `mapstructure:"api-key-file"`
	TimeoutSeconds int    `mapstructure:"timeout-seconds"`
}

type GeminiConfig struct {
	Model          string `mapstructure:"model"`
	APIKeyFile     string `mapstructure:"api-key-file"`
	TimeoutSeconds int    `mapstructure:"timeout-seconds"`
}

// PromptConfig tunes the instruction block wording.
type PromptConfig struct {
	Tone        string `mapstructure:"tone"`
	Detail      string `mapstructure:"detail"`
	AdvisorRole string `mapstructure:"advisor-role"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "proposal-draft generates job placement proposal drafts from a posting and a candidate profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is "+app+".yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	if err := viper.BindEnv("backend.ollama.base-url", "OLLAMA_BASE_URL"); err != nil {
		log.Fatalf("binding OLLAMA_BASE_URL environment variable: %v", err)
	}
	if err := viper.BindEnv("backend.ollama.model", "OLLAMA_MODEL"); err != nil {
		log.Fatalf("binding OLLAMA_MODEL environment variable: %v", err)
	}
}

func initConfig() {
	// A local .env is a convenience for demo runs; missing is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	// The app runs with zero configuration (mock backend), so a missing
	// config file is not an error. A file present but unparseable is.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}
