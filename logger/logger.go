package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	log  *logrus.Logger
	once sync.Once
)

// Init initializes the logger only once
func Init() {
	once.Do(func() {
		l := logrus.New()
		l.SetOutput(os.Stdout)
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})

		level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
		if err != nil {
			level = logrus.InfoLevel
		}
		l.SetLevel(level)

		log = l
	})
}

// GetLogger returns the singleton logger
func GetLogger() *logrus.Logger {
	Init()
	return log
}

// SetLevel applies a configured level name; unknown names leave the level unchanged.
func SetLevel(name string) error {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	GetLogger().SetLevel(level)
	return nil
}

func Info(msg string) {
	GetLogger().Info(msg)
}

func Error(err error, msg string) {
	GetLogger().WithError(err).Error(msg)
}

func Fatal(err error, msg string) {
	GetLogger().WithError(err).Fatal(msg)
}
