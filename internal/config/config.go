package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Analysis    Analysis    `mapstructure:",squash"`
	Report      Report      `mapstructure:",squash"`
	DailyReport DailyReport `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Auth guarda as credenciais do único operador do sistema.
// Sem tabela de usuários: o hash bcrypt da senha vem do ambiente.
type Auth struct {
	OperatorEmail        string `mapstructure:"operator_email"`
	OperatorPasswordHash string `mapstructure:"operator_password_hash"`
	TokenTTLHours        int    `mapstructure:"token_ttl_hours"`
}

type Analysis struct {
	LowCostThreshold float64 `mapstructure:"low_cost_threshold"`
}

type Report struct {
	OutputDir string `mapstructure:"report_output_dir"`
}

type DailyReport struct {
	CronSchedule string `mapstructure:"daily_report_cron"`
	Enabled      bool   `mapstructure:"daily_report_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("OPERATOR_EMAIL", "operator@localhost")
	viper.SetDefault("OPERATOR_PASSWORD_HASH", "")
	viper.SetDefault("TOKEN_TTL_HOURS", 12)

	// Limite padrão para produto de baixo custo
	viper.SetDefault("LOW_COST_THRESHOLD", 20.0)

	viper.SetDefault("REPORT_OUTPUT_DIR", "reports")

	viper.SetDefault("DAILY_REPORT_CRON", "0 7 * * *") // Todos os dias às 7h da manhã
	viper.SetDefault("DAILY_REPORT_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Info("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
