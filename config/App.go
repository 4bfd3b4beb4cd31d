package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

var ServiceName string = "takarakuji-service"
var MizuhoBaseURL string = "https://www.mizuhobank.co.jp"
var FetchTimeout time.Duration = 10 * time.Second
var Logger zerolog.Logger

func InitializeConfig() {
	Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", ServiceName).
		Logger()

	if baseURL := viper.GetString("mizuho.base_url"); baseURL != "" {
		MizuhoBaseURL = baseURL
	}
	if seconds := viper.GetInt("mizuho.timeout_seconds"); seconds > 0 {
		FetchTimeout = time.Duration(seconds) * time.Second
	}
}
