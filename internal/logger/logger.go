package logger

import (
	"github.com/sirupsen/logrus"
)

// Log доступен и до вызова Init: по умолчанию это logrus с уровнем info.
var Log = logrus.New()

// Init инициализирует структурированный логгер.
func Init(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// Используем JSON формат для production, text для development
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

// Moderation возвращает запись с общими полями для действий модерации.
func Moderation(action string, fields logrus.Fields) *logrus.Entry {
	entry := Log.WithField("action", action)
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	return entry
}
