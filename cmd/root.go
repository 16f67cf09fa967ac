package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theworkedge/contract-scout/internal/mail"
	"github.com/theworkedge/contract-scout/internal/report"
)

const (
	app = "contract-scout"
)

type Config struct {
	Search        *SearchConfig     `mapstructure:"search"`
	SAMAPIKeyFile string            `mapstructure:"sam-api-key-file"`
	CSVFile       string            `mapstructure:"csv-file"`
	Thresholds    report.Thresholds `mapstructure:"thresholds"`
	AI            *AIConfig         `mapstructure:"ai"`
	Email         *EmailConfig      `mapstructure:"email"`
}

type SearchConfig struct {
	// WindowDays is how far back postedFrom reaches from the run date.
	WindowDays int `mapstructure:"window-days"`
	Limit      int `mapstructure:"limit"`
}

type AIConfig struct {
	Provider     string           `mapstructure:"provider"`
	MaxLogLength int              `mapstructure:"max-log-length"`
	Anthropic    *AnthropicConfig `mapstructure:"anthropic"`
	Gemini       *GeminiConfig    `mapstructure:"gemini"`
}

type AnthropicConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
}

type EmailConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	From         string `mapstructure:"from"`
	Recipient    string `mapstructure:"recipient"`
	PasswordFile string `mapstructure:"password-file"`
}

func (e *EmailConfig) mailConfig(password string) mail.Config {
	return mail.Config{
		Host:      e.Host,
		Port:      e.Port,
		From:      e.From,
		Recipient: e.Recipient,
		Password:  password,
	}
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "contract-scout is a daily scout for SAM.gov contract opportunities: search, score, report",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envBindings := map[string]string{
		"sam-api-key-file":         "SAM_API_KEY_FILE",
		"ai.anthropic.api-key-file": "ANTHROPIC_API_KEY_FILE",
		"ai.gemini.api-key-file":    "GEMINI_API_KEY_FILE",
		"email.password-file":       "SMTP_PASSWORD_FILE",
	}
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is contract-scout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for the run command.
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	return config, nil
}
