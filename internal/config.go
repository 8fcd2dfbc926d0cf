package internal

import (
	"fmt"

	"github.com/spf13/viper"
)

type KvSqlConfig struct {
	AppName string `mapstructure:"app_name"`
	Root    string `mapstructure:"root"`

	Server struct {
		Addr  string `mapstructure:"addr"`
		Debug bool   `mapstructure:"debug"`
	} `mapstructure:"server"`

	Logging struct {
		Level  string `mapstructure:"level"`
		SeqURL string `mapstructure:"seq_url"`
	} `mapstructure:"logging"`
}

func LoadConfig(path string) (*KvSqlConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app_name", "kvsql")
	v.SetDefault("root", "kvsql")
	v.SetDefault("server.addr", "127.0.0.1:8866")
	v.SetDefault("logging.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg KvSqlConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
