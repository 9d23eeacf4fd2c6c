package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sharetube/player-api/internal/app"
	"github.com/sharetube/player-api/internal/player"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
}

var (
	port = configVar[int]{
		envKey:       "PLAYER_HOST_PORT",
		flagKey:      "port",
		defaultValue: 8080,
	}
	host = configVar[string]{
		envKey:       "PLAYER_HOST_HOST",
		flagKey:      "host",
		defaultValue: "0.0.0.0",
	}
	logLevel = configVar[string]{
		envKey:       "PLAYER_HOST_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
	}
	domain = configVar[string]{
		envKey:       "PLAYER_HOST_DOMAIN",
		flagKey:      "domain",
		defaultValue: player.DefaultDomain,
	}
	pageURL = configVar[string]{
		envKey:       "PLAYER_HOST_PAGE_URL",
		flagKey:      "page-url",
		defaultValue: "",
	}
	apiKey = configVar[string]{
		envKey:       "PLAYER_HOST_API_KEY",
		flagKey:      "api-key",
		defaultValue: "",
	}
	mirrorState = configVar[bool]{
		envKey:       "PLAYER_HOST_MIRROR_STATE",
		flagKey:      "mirror-state",
		defaultValue: false,
	}
	stateTTL = configVar[time.Duration]{
		envKey:       "PLAYER_HOST_STATE_TTL",
		flagKey:      "state-ttl",
		defaultValue: 24 * time.Hour,
	}
	redisPort = configVar[int]{
		envKey:       "REDIS_PORT",
		flagKey:      "redis-port",
		defaultValue: 6379,
	}
	redisHost = configVar[string]{
		envKey:       "REDIS_HOST",
		flagKey:      "redis-host",
		defaultValue: "localhost",
	}
	redisPassword = configVar[string]{
		envKey:       "REDIS_PASSWORD",
		flagKey:      "redis-password",
		defaultValue: "",
	}
)

func loadAppConfig() *app.AppConfig {
	pflag.Int(port.flagKey, port.defaultValue, "Server port")
	pflag.String(host.flagKey, host.defaultValue, "Server host")
	pflag.String(logLevel.flagKey, logLevel.defaultValue, "Logging level")
	pflag.String(domain.flagKey, domain.defaultValue, "Player domain the embedded frames are served from")
	pflag.String(pageURL.flagKey, pageURL.defaultValue, "URL of the page embedding the players")
	pflag.String(apiKey.flagKey, apiKey.defaultValue, "Player API key")
	pflag.Bool(mirrorState.flagKey, mirrorState.defaultValue, "Mirror player state into redis")
	pflag.Duration(stateTTL.flagKey, stateTTL.defaultValue, "TTL of mirrored player state")
	pflag.Int(redisPort.flagKey, redisPort.defaultValue, "Redis port")
	pflag.String(redisHost.flagKey, redisHost.defaultValue, "Redis host")
	pflag.String(redisPassword.flagKey, redisPassword.defaultValue, "Redis password")
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	viper.BindEnv(port.flagKey, port.envKey)
	viper.BindEnv(host.flagKey, host.envKey)
	viper.BindEnv(logLevel.flagKey, logLevel.envKey)
	viper.BindEnv(domain.flagKey, domain.envKey)
	viper.BindEnv(pageURL.flagKey, pageURL.envKey)
	viper.BindEnv(apiKey.flagKey, apiKey.envKey)
	viper.BindEnv(mirrorState.flagKey, mirrorState.envKey)
	viper.BindEnv(stateTTL.flagKey, stateTTL.envKey)
	viper.BindEnv(redisPort.flagKey, redisPort.envKey)
	viper.BindEnv(redisHost.flagKey, redisHost.envKey)
	viper.BindEnv(redisPassword.flagKey, redisPassword.envKey)

	viper.SetDefault(port.flagKey, port.defaultValue)
	viper.SetDefault(host.flagKey, host.defaultValue)
	viper.SetDefault(logLevel.flagKey, logLevel.defaultValue)
	viper.SetDefault(domain.flagKey, domain.defaultValue)
	viper.SetDefault(pageURL.flagKey, pageURL.defaultValue)
	viper.SetDefault(apiKey.flagKey, apiKey.defaultValue)
	viper.SetDefault(mirrorState.flagKey, mirrorState.defaultValue)
	viper.SetDefault(stateTTL.flagKey, stateTTL.defaultValue)
	viper.SetDefault(redisPort.flagKey, redisPort.defaultValue)
	viper.SetDefault(redisHost.flagKey, redisHost.defaultValue)
	viper.SetDefault(redisPassword.flagKey, redisPassword.defaultValue)

	config := &app.AppConfig{
		Host:          viper.GetString(host.flagKey),
		Port:          viper.GetInt(port.flagKey),
		LogLevel:      viper.GetString(logLevel.flagKey),
		Domain:        viper.GetString(domain.flagKey),
		PageURL:       viper.GetString(pageURL.flagKey),
		APIKey:        viper.GetString(apiKey.flagKey),
		MirrorState:   viper.GetBool(mirrorState.flagKey),
		StateTTL:      viper.GetDuration(stateTTL.flagKey),
		RedisPort:     viper.GetInt(redisPort.flagKey),
		RedisHost:     viper.GetString(redisHost.flagKey),
		RedisPassword: viper.GetString(redisPassword.flagKey),
	}

	return config
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting app with config: %s\n", jsonConfig)

	log.Fatal(app.Run(ctx, appConfig))
}
