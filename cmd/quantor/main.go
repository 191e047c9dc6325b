package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/viant/quantor"
	"github.com/viant/quantor/api"
)

func main() {
	config, err := loadConfig()
	if err != nil {
		log.Fatalln(err)
	}

	options := []quantor.Option{quantor.WithConfig(config)}
	service, err := quantor.New(options...)
	if err != nil {
		log.Fatalln(err)
	}
	runtime := service.Runtime()

	ctx := context.Background()
	if err = runtime.Start(ctx); err != nil {
		log.Fatalln(err)
	}

	app := fiber.New()
	api.NewHandler(runtime.Engine()).Register(app)
	go func() {
		if listenErr := app.Listen(config.HTTP.ListenAddress); listenErr != nil {
			log.Fatalln(listenErr)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	_ = app.Shutdown()
	_ = runtime.Shutdown(ctx)
}

// loadConfig reads config.yaml from the working directory, or the file
// named by QUANTOR_CONFIG. A missing default file falls back to package
// defaults; an explicitly named file must exist.
func loadConfig() (*quantor.Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./")
	if path := os.Getenv("QUANTOR_CONFIG"); path != "" {
		v.SetConfigFile(path)
	}

	config := quantor.DefaultConfig()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return config, nil
		}
		return nil, err
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
