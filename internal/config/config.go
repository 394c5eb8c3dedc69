package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Хранилища программ.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// AppConfig содержит конфигурацию приложения
type AppConfig struct {
	ServerPort string
	GinMode    string
	Kafka      KafkaConfig
	Database   DatabaseConfig
	Logging    LoggerConfig
	Storage    StorageConfig
	Cell       CellConfig
}

// KafkaConfig содержит настройки топиков событий и сигналов датчиков
type KafkaConfig struct {
	Enable       bool
	Brokers      []string
	EventsTopic  string
	SignalsTopic string
	GroupID      string
}

// LoggerConfig содержит настройки логгера
type LoggerConfig struct {
	Enable     bool
	LogsDir    string
	Level      string
	SavingDays int
}

// DatabaseConfig содержит конфигурацию для подключения к базе данных
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
}

// StorageConfig определяет, где хранятся программы
type StorageConfig struct {
	Driver       string
	ProgramsFile string
	Watch        bool
}

// CellConfig описывает ячейку: таблицу кодов ошибок, входы и датчики
type CellConfig struct {
	ErrorTableFile    string
	DigitalInputCount int
	FrameInterval     time.Duration
	MovementMode      string
	SensorBindings    string
}

// LoadConfiguration загружает конфигурацию из .env файла или переменных окружения
func LoadConfiguration() (*AppConfig, error) {
	_ = godotenv.Load()

	config := &AppConfig{
		ServerPort: getEnv("APP_PORT", "8082"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		Kafka: KafkaConfig{
			Enable:       getEnvAsBool("KAFKA_ENABLE", false),
			Brokers:      getEnvAsList("KAFKA_BROKER", "localhost:9092"),
			EventsTopic:  getEnv("KAFKA_TOPIC", "pendant_events"),
			SignalsTopic: getEnv("KAFKA_SIGNALS_TOPIC", "pendant_signals"),
			GroupID:      getEnv("KAFKA_GROUP_ID", "pendant-service"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Username: getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "root"),
			DBName:   getEnv("DB_NAME", "pendant_db"),
		},
		Logging: LoggerConfig{
			Enable:     getEnvAsBool("LOGGER_ENABLE", true),
			LogsDir:    getEnv("LOGGER_LOGS_DIR", "./logs"),
			Level:      getEnv("LOGGER_LOG_LEVEL", "DEBUG"),
			SavingDays: getEnvAsInt("LOGGER_SAVING_DAYS", 7),
		},
		Storage: StorageConfig{
			Driver:       strings.ToLower(getEnv("STORAGE_DRIVER", StorageFile)),
			ProgramsFile: getEnv("PROGRAMS_FILE", "./data/programs.json"),
			Watch:        getEnvAsBool("PROGRAMS_WATCH", true),
		},
		Cell: CellConfig{
			ErrorTableFile:    getEnv("ERROR_TABLE_FILE", ""),
			DigitalInputCount: getEnvAsInt("DIGITAL_INPUT_COUNT", 16),
			FrameInterval:     time.Duration(getEnvAsInt("FRAME_INTERVAL_MS", 20)) * time.Millisecond,
			MovementMode:      getEnv("MOVEMENT_MODE", "T1"),
			SensorBindings:    getEnv("SENSOR_BINDINGS", "estop0=S-1001-0,estop1=S-1001-1,estop2=S-1001-2,gate=S-1002,padlock=S-1003,bumper=S-1004,deadman=A-3001"),
		},
	}

	switch config.Storage.Driver {
	case StorageFile, StoragePostgres:
	default:
		return nil, fmt.Errorf("неизвестное хранилище программ STORAGE_DRIVER=%q", config.Storage.Driver)
	}
	if config.Cell.DigitalInputCount < 0 {
		return nil, fmt.Errorf("DIGITAL_INPUT_COUNT не может быть отрицательным: %d", config.Cell.DigitalInputCount)
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(name string, defaultValue int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	val, _ := strconv.ParseBool(value)
	return val
}

func getEnvAsList(key, fallback string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, fallback), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
