package config

import (
	"fmt"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
)

// Config carries everything the server needs, bound from ATLAS_*
// environment variables (a .env file is loaded automatically).
type Config struct {
	Env         string `mapstructure:"env"`
	HTTPPort    string `mapstructure:"http_port"`
	LibraryRoot string `mapstructure:"library_root"`

	DBDriver string `mapstructure:"db_driver"` // postgres or sqlite
	DBHost   string `mapstructure:"db_host"`
	DBPort   string `mapstructure:"db_port"`
	DBUser   string `mapstructure:"db_user"`
	DBPass   string `mapstructure:"db_pass"`
	DBName   string `mapstructure:"db_name"`
	DBPath   string `mapstructure:"db_path"` // sqlite file

	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`

	KafkaBrokers string `mapstructure:"kafka_brokers"` // empty disables event publishing

	TemplateDir    string `mapstructure:"template_dir"`     // overrides the embedded slate templates
	TrashRetention string `mapstructure:"trash_retention"`  // e.g. 720h
	CacheWarmCron  string `mapstructure:"cache_warm_cron"`  // cron spec
	StatsCron      string `mapstructure:"stats_cron"`
}

func LoadConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("atlas")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "dev")
	v.SetDefault("http_port", "8080")
	v.SetDefault("library_root", "./library")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "atlas")
	v.SetDefault("db_pass", "atlas")
	v.SetDefault("db_name", "atlas")
	v.SetDefault("db_path", "./atlas.db")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("kafka_brokers", "")
	v.SetDefault("template_dir", "")
	v.SetDefault("trash_retention", "720h")
	v.SetDefault("cache_warm_cron", "@every 5m")
	v.SetDefault("stats_cron", "@every 1m")

	cnf := &Config{}
	if err := v.Unmarshal(cnf); err != nil {
		panic(err)
	}

	return cnf
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName)
}
