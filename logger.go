package readline

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the session's debug logger. Logging to the terminal
// would corrupt the prompt, so output goes to the file named by
// READLINE_LOG_FILE; without it the logger is a nop.
func newLogger() *zap.SugaredLogger {
	path := os.Getenv("READLINE_LOG_FILE")
	if path == "" {
		return zap.NewNop().Sugar()
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zap.NewNop().Sugar()
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(file),
		zapcore.DebugLevel,
	)
	return zap.New(core).Sugar()
}
