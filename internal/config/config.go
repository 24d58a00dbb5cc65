package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"formvalidator/internal/parser"
)

// AppConfig 应用配置
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
	Sheets  SheetsConfig  `toml:"sheets"`
	Convert ConvertConfig `toml:"convert"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int   `toml:"port"`
	DevMode     bool  `toml:"dev_mode"`
	MaxUploadMB int64 `toml:"max_upload_mb"`
}

// LogConfig 日志配置
type LogConfig struct {
	Env   string `toml:"env"`   // development / production
	Level string `toml:"level"` // debug / info / warn / error
}

// SheetsConfig sheet 分类名单
type SheetsConfig struct {
	Analysis   []string `toml:"analysis"`
	Experiment []string `toml:"experiment"`
}

// ConvertConfig 转换配置
type ConvertConfig struct {
	ParallelSheets int      `toml:"parallel_sheets"`
	SkipSheets     []string `toml:"skip_sheets"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20262,
			DevMode:     false,
			MaxUploadMB: 32,
		},
		Log: LogConfig{
			Env:   "development",
			Level: "info",
		},
		Sheets: SheetsConfig{
			Analysis:   append([]string(nil), parser.DefaultAnalysisSheets...),
			Experiment: append([]string(nil), parser.DefaultExperimentSheets...),
		},
		Convert: ConvertConfig{
			ParallelSheets: 4,
			SkipSheets:     []string{"readme", "instructions"},
		},
	}
}

// Classifier 按配置的名单创建 sheet 分类器
func (c *AppConfig) Classifier() *parser.SheetClassifier {
	return parser.NewSheetClassifier(c.Sheets.Analysis, c.Sheets.Experiment)
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath 可执行文件同目录下的 config.toml
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo 加载配置并返回元信息
// path 为空时使用可执行文件同目录下的 config.toml；文件不存在时使用默认配置
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	// .env 可选
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, info, err
	}
	if err == nil {
		info.FileFound = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		// 名单类字段以文件为准，不与默认值合并
		config.Sheets = SheetsConfig{}
		config.Convert.SkipSheets = nil
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, err
		}
		fillDefaultLists(config)
	}

	applyEnv(config, &info)
	return config, info, nil
}

func fillDefaultLists(config *AppConfig) {
	def := DefaultConfig()
	if config.Sheets.Analysis == nil {
		config.Sheets.Analysis = def.Sheets.Analysis
	}
	if config.Sheets.Experiment == nil {
		config.Sheets.Experiment = def.Sheets.Experiment
	}
	if config.Convert.SkipSheets == nil {
		config.Convert.SkipSheets = def.Convert.SkipSheets
	}
}

// applyEnv 环境变量覆盖
func applyEnv(config *AppConfig, info *LoadConfigInfo) {
	if v := os.Getenv("FORMVALIDATOR_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
			info.PortSpecified = true
		}
	}
	if v := os.Getenv("FORMVALIDATOR_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv("FORMVALIDATOR_LOG_ENV"); v != "" {
		config.Log.Env = v
	}
}

// SaveConfig 保存配置到 path（为空时写到可执行文件同目录）
func SaveConfig(config *AppConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
