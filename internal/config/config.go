// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件和环境变量加载的所有设置。
var Conf Config

// defaultSystemPrompt 是 /ask 接口使用的固定 system 提示词。
// 它不接受用户输入，只能通过配置整体替换。
const defaultSystemPrompt = "You are a Kenyan political accountability assistant. Provide structured responses with:\n" +
	"1. **Fact Source** (official documents)\n" +
	"2. **Progress Status** (Completed/In-Progress/Stalled)\n" +
	"3. **Verification Links** (gov't portals)\n" +
	"4. **Key Figures** (budgets, timelines)"

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 存储所有数据库连接的配置。
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
}

// MySQLConfig 存储 MySQL 数据库的配置。
type MySQLConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// LLMConfig 存储大语言模型相关的配置。
type LLMConfig struct {
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	Model        string `mapstructure:"model"`
	SystemPrompt string `mapstructure:"system_prompt"`
}

// Init 初始化配置加载。优先级从高到低：环境变量 > YAML 配置文件 > 默认值。
// 配置文件是可选的，缺失时仅靠环境变量和默认值也能启动。
func Init(configPath string) {
	setDefaults()
	bindEnv()

	if _, err := os.Stat(configPath); err == nil {
		viper.SetConfigFile(configPath)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("读取配置文件失败: %w", err))
		}
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("无法将配置解析到结构体中: %w", err))
	}
}

// setDefaults 注册每个配置键的默认值，保证环境变量覆盖时键一定存在。
func setDefaults() {
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.mode", "release")

	viper.SetDefault("database.mysql.host", "127.0.0.1")
	viper.SetDefault("database.mysql.port", "3306")
	viper.SetDefault("database.mysql.user", "root")
	viper.SetDefault("database.mysql.password", "")
	viper.SetDefault("database.mysql.name", "mheshimiwa_watch")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
	viper.SetDefault("log.output_path", "")

	viper.SetDefault("llm.api_key", "")
	viper.SetDefault("llm.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("llm.model", "deepseek/deepseek-r1:free")
	viper.SetDefault("llm.system_prompt", defaultSystemPrompt)
}

// bindEnv 绑定部署环境使用的环境变量名。
func bindEnv() {
	_ = viper.BindEnv("server.port", "SERVER_PORT")
	_ = viper.BindEnv("database.mysql.host", "DB_HOST")
	_ = viper.BindEnv("database.mysql.port", "DB_PORT")
	_ = viper.BindEnv("database.mysql.user", "DB_USER")
	_ = viper.BindEnv("database.mysql.password", "DB_PASSWORD")
	_ = viper.BindEnv("database.mysql.name", "DB_NAME")
	_ = viper.BindEnv("llm.api_key", "OPENROUTER_API_KEY")
	_ = viper.BindEnv("llm.base_url", "OPENROUTER_BASE_URL")
}
