package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-analyzer"
)

type Config struct {
	Source     string            `mapstructure:"source"`
	Output     *OutputConfig     `mapstructure:"output"`
	Keywords   *KeywordsConfig   `mapstructure:"keywords"`
	Workers    int               `mapstructure:"workers"`
	Recognizer *RecognizerConfig `mapstructure:"recognizer"`
}

type OutputConfig struct {
	Path     string `mapstructure:"path"`
	BaseName string `mapstructure:"base-name"`
	Format   string `mapstructure:"format"`
}

// KeywordsConfig holds the two comma-separated keyword sets.
type KeywordsConfig struct {
	GenAI string `mapstructure:"gen-ai"`
	AIML  string `mapstructure:"ai-ml"`
}

type RecognizerConfig struct {
	Provider  string        `mapstructure:"provider"`
	Stopwords []string      `mapstructure:"stopwords"`
	Gemini    *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-analyzer extracts candidate details from PDF and DOCX resumes and scores them against keyword sets",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("recognizer.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	viper.SetDefault("output.base-name", "resumes_analysis")
	viper.SetDefault("output.format", "csv")
	viper.SetDefault("workers", 1)
	viper.SetDefault("recognizer.provider", "heuristic")
	viper.SetDefault("recognizer.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("recognizer.gemini.max-retries", 3)
	viper.SetDefault("recognizer.gemini.max-log-length", 200)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-analyzer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Flags and prompts can supply everything, so only an explicitly requested
	// or broken config file is fatal.
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

	return config, nil
}
