package main

import (
	"fmt"

	"takarakuji-service/config"
	"takarakuji-service/controller"
	"takarakuji-service/routes"
	"takarakuji-service/utils"

	"github.com/spf13/viper"
)

func main() {
	utils.InitializeViper("config", "yml")
	config.InitializeConfig()
	controller.InitClient()

	port := viper.GetInt("port")
	if port == 0 {
		port = 9000
	}
	server := routes.InitRoutes()
	config.Logger.Info().Int("port", port).Msg("starting")
	if err := server.Listen(fmt.Sprintf("0.0.0.0:%d", port)); err != nil {
		config.Logger.Fatal().Err(err).Msg("server stopped")
	}
}
