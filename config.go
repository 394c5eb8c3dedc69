package pendant

import (
	"os"
	"strconv"
	"time"
)

// Config хранит модель конфигурации встраиваемого пульта
type Config struct {
	ProgramsFile   string
	Watch          bool
	ErrorTableFile string
	InputCount     int
	FrameInterval  time.Duration
	MovementMode   string
	SensorBindings string
	LogLevel       string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	programsFile := os.Getenv("PENDANT_PROGRAMS_FILE")
	if programsFile == "" {
		programsFile = "data/programs.json"
	}

	watch, err := strconv.ParseBool(os.Getenv("PENDANT_WATCH"))
	if err != nil {
		watch = false
	}

	inputs, err := strconv.Atoi(os.Getenv("PENDANT_INPUTS"))
	if err != nil || inputs <= 0 {
		inputs = 16
	}

	frameMs, err := strconv.Atoi(os.Getenv("PENDANT_FRAME_MS"))
	if err != nil || frameMs <= 0 {
		frameMs = 20
	}

	mode := os.Getenv("PENDANT_MODE")
	if mode == "" {
		mode = "T1"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		ProgramsFile:   programsFile,
		Watch:          watch,
		ErrorTableFile: os.Getenv("PENDANT_ERROR_TABLE"),
		InputCount:     inputs,
		FrameInterval:  time.Duration(frameMs) * time.Millisecond,
		MovementMode:   mode,
		SensorBindings: os.Getenv("PENDANT_SENSORS"),
		LogLevel:       logLevel,
	}
}
