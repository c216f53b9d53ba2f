package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Business BusinessConfig `toml:"business"`
	Cache    CacheConfig    `toml:"cache"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir  string `toml:"data_dir"`
	Storage  string `toml:"storage"`   // memory / sqlite
	SeedFile string `toml:"seed_file"` // 启动时预加载的表格，可为空
}

// BusinessConfig 业务配置：公斤段方案与仪表板口径规则
type BusinessConfig struct {
	WeightScheme      string            `toml:"weight_scheme"` // product / generic
	ExcludedPlatforms []string          `toml:"excluded_platforms"`
	RenameTable       map[string]string `toml:"rename_table"`
}

// CacheConfig 报表缓存配置
type CacheConfig struct {
	TTLSeconds int `toml:"ttl_seconds"`
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20352,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
			Storage: "memory",
		},
		Business: BusinessConfig{
			WeightScheme:      "product",
			ExcludedPlatforms: []string{"微盟", "微商城", "一定货"},
			RenameTable:       map[string]string{"头条放心购": "抖音"},
		},
		Cache: CacheConfig{
			TTLSeconds: 60,
		},
	}
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig 从可执行文件同目录的 config.toml 加载配置，
// 文件不存在时使用默认配置，环境变量最后覆盖
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides 环境变量覆盖（用于本地运行 / 容器部署）
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("FREIGHT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("FREIGHT_STORAGE"); v != "" {
		config.Data.Storage = v
	}
	if v := os.Getenv("FREIGHT_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("FREIGHT_SEED_FILE"); v != "" {
		config.Data.SeedFile = v
	}
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir 确保数据目录及其子目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	for _, subdir := range []string{"uploads", "exports"} {
		if err := os.MkdirAll(filepath.Join(dataDir, subdir), 0755); err != nil {
			return "", err
		}
	}
	return dataDir, nil
}
