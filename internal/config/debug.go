package config

import "os"

func IsDebug() bool {
	return os.Getenv("COMPANION_DEBUG") == "1"
}
