package output

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	debugOnce sync.Once
	debugLog  *log.Logger
)

// LogFilePath returns the path to the debug log file.
// SHIPIT_LOG_FILE overrides the default of ~/.shipit/logs/shipit.log.
func LogFilePath() string {
	if customPath := os.Getenv("SHIPIT_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "shipit.log"
	}

	return filepath.Join(homeDir, ".shipit", "logs", "shipit.log")
}

// debugLogger lazily opens the rotating debug log
func debugLogger() *log.Logger {
	debugOnce.Do(func() {
		debugLog = log.New(&lumberjack.Logger{
			Filename:   LogFilePath(),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}, "", log.LstdFlags)
	})
	return debugLog
}
