// Package config loads settings from an optional config.yaml, a .env file
// and SEEDSTUDIO_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/dukerupert/seedstudio/internal/photo"
	"github.com/dukerupert/seedstudio/internal/push"
)

const envPrefix = "SEEDSTUDIO"

const (
	keyAddr          = "addr"
	keyDBPath        = "db_path"
	keyLogLevel      = "log.level"
	keyLogFormat     = "log.format"
	keyAllowNegative = "stock.allow_negative"
	keyOrigins       = "ws.origins"

	keyS3Endpoint  = "s3.endpoint"
	keyS3Bucket    = "s3.bucket"
	keyS3Region    = "s3.region"
	keyS3AccessKey = "s3.access_key"
	keyS3SecretKey = "s3.secret_key"
	keyS3Prefix    = "s3.prefix"

	keyVAPIDPublic  = "push.vapid_public_key"
	keyVAPIDPrivate = "push.vapid_private_key"
	keySubscriber   = "push.subscriber"
	keyPushHour     = "push.hour"
)

type Config struct {
	Addr               string
	DBPath             string
	LogLevel           string
	LogFormat          string
	AllowNegativeStock bool
	OriginPatterns     []string
	S3                 photo.S3Config
	Push               push.Config
	PushHour           int
}

// Load reads configuration. configFile may be empty, in which case
// config.yaml in the working directory is used when present.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault(keyAddr, ":8080")
	v.SetDefault(keyDBPath, "seedstudio.db")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "text")
	v.SetDefault(keyAllowNegative, false)
	v.SetDefault(keyOrigins, []string{})
	v.SetDefault(keyS3Region, "us-east-1")
	v.SetDefault(keyPushHour, 8)
	for _, k := range []string{keyS3Endpoint, keyS3Bucket, keyS3AccessKey, keyS3SecretKey, keyS3Prefix, keyVAPIDPublic, keyVAPIDPrivate, keySubscriber} {
		v.SetDefault(k, "")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Addr:               v.GetString(keyAddr),
		DBPath:             v.GetString(keyDBPath),
		LogLevel:           v.GetString(keyLogLevel),
		LogFormat:          v.GetString(keyLogFormat),
		AllowNegativeStock: v.GetBool(keyAllowNegative),
		OriginPatterns:     splitList(v.GetStringSlice(keyOrigins)),
		S3: photo.S3Config{
			Endpoint:  v.GetString(keyS3Endpoint),
			Bucket:    v.GetString(keyS3Bucket),
			Region:    v.GetString(keyS3Region),
			AccessKey: v.GetString(keyS3AccessKey),
			SecretKey: v.GetString(keyS3SecretKey),
			Prefix:    v.GetString(keyS3Prefix),
		},
		Push: push.Config{
			VAPIDPublicKey:  v.GetString(keyVAPIDPublic),
			VAPIDPrivateKey: v.GetString(keyVAPIDPrivate),
			Subscriber:      v.GetString(keySubscriber),
		},
		PushHour: v.GetInt(keyPushHour),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return errors.New("config: db_path must not be empty")
	}
	if c.PushHour < 0 || c.PushHour > 23 {
		return fmt.Errorf("config: push.hour must be between 0 and 23, got %d", c.PushHour)
	}
	if (c.Push.VAPIDPublicKey == "") != (c.Push.VAPIDPrivateKey == "") {
		return errors.New("config: set both push.vapid_public_key and push.vapid_private_key, or neither")
	}
	return nil
}

// splitList flattens comma-separated entries, as env vars arrive as one string.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
