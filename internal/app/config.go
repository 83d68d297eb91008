package app

import (
	"github.com/yungbote/buildstore-backend/internal/platform/envutil"
)

type Config struct {
	LogMode string
}

func LoadConfig() Config {
	return Config{
		LogMode: envutil.String("LOG_MODE", "development"),
	}
}
