package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New 创建日志器：本地环境彩色文本输出，其他环境 JSON；
// 级别由 LOG_LEVEL 控制，默认 info
func New() *logrus.Logger {
	log := logrus.New()

	env := os.Getenv("ENVIRONMENT")
	if env == "" || env == "local" {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
			ForceColors:     true,
		})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	}

	log.SetOutput(os.Stdout)

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}
