// internal/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	AuthType        string `mapstructure:"auth_type"` // "static_credentials" or "iam_role"
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	From            string `mapstructure:"from"`
}

type Config struct {
	Storage struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"storage"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Quiz struct {
		MasteryThreshold int `mapstructure:"mastery_threshold"` // この回数正解した単語はrandom30の対象外
		RandomLimit      int `mapstructure:"random_limit"`
		RecentSmall      int `mapstructure:"recent_small"`
		RecentLarge      int `mapstructure:"recent_large"`
	} `mapstructure:"quiz"`
	Mailer struct {
		Type      string `mapstructure:"type"` // "log" / "smtp" / "ses"
		Recipient string `mapstructure:"recipient"`
	} `mapstructure:"mailer"`
	SMTP SMTPConfig `mapstructure:"smtp"`
	SES  SESConfig  `mapstructure:"ses"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数でも上書きできるようにする (例: APP_STORAGE_PATH)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("storage.path", "STORAGE_PATH")
	viper.BindEnv("mailer.recipient", "MAILER_RECIPIENT")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.Server.Port == "" {
		Cfg.Server.Port = ":8080"
	}
	if Cfg.Storage.Path == "" {
		log.Println("Storage path not set, using default 'data/vocabulary_data.json'")
		Cfg.Storage.Path = "data/vocabulary_data.json"
	}
	if Cfg.Quiz.MasteryThreshold <= 0 {
		Cfg.Quiz.MasteryThreshold = 5
	}
	if Cfg.Quiz.RandomLimit <= 0 {
		Cfg.Quiz.RandomLimit = 30
	}
	if Cfg.Quiz.RecentSmall <= 0 {
		Cfg.Quiz.RecentSmall = 10
	}
	if Cfg.Quiz.RecentLarge <= 0 {
		Cfg.Quiz.RecentLarge = 30
	}
	if Cfg.Mailer.Type == "" {
		Cfg.Mailer.Type = "log"
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Storage Path: %s", Cfg.Storage.Path)
	log.Printf("Mailer Type: %s", Cfg.Mailer.Type)

	return nil
}
