// Package config 进程级配置，启动时读取一次，运行期间不再变更。
package config

import (
	"github.com/go-errors/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// 文件系统抽象，测试时可替换为内存文件系统
var fs = afero.NewOsFs()

// Config 应用配置
type Config struct {
	Path     string         `yaml:"-"` // 配置文件路径
	Telegram TelegramConfig `yaml:"telegram"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Mail     MailConfig     `yaml:"mail"`
	Log      LogConfig      `yaml:"log"`
}

// TelegramConfig Telegram 机器人配置
type TelegramConfig struct {
	Token        string  `yaml:"token"`         // Bot Token
	ChatID       int64   `yaml:"chat_id"`       // 监控消息投递的会话
	AllowedUsers []int64 `yaml:"allowed_users"` // 允许使用命令的用户（为空则允许所有用户）
	PollTimeout  int     `yaml:"poll_timeout"`  // getUpdates 长轮询超时（秒）
}

// MonitorConfig 监控配置
type MonitorConfig struct {
	Interval      int    `yaml:"interval"`       // 定时上报间隔（秒），默认 60
	DiskPath      string `yaml:"disk_path"`      // 磁盘用量统计的挂载点，默认 /
	BarWidth      int    `yaml:"bar_width"`      // 进度条宽度，默认 10
	TitleTemplate string `yaml:"title_template"` // 报告标题模板，支持 {hostname} {time} 占位符
}

// MailConfig 邮件通知渠道配置（可选）
type MailConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`    // MB
	MaxBackups int    `yaml:"max_backups"` // 保留的旧日志文件数
	MaxAge     int    `yaml:"max_age"`     // 天数
	Compress   bool   `yaml:"compress"`
}

// Load 从文件加载配置并填充默认值
func Load(path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("读取配置文件失败: %v", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Errorf("解析配置文件失败: %v", err)
	}
	cfg.Path = path

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Monitor.Interval <= 0 {
		c.Monitor.Interval = 60
	}
	if c.Monitor.DiskPath == "" {
		c.Monitor.DiskPath = "/"
	}
	if c.Monitor.BarWidth <= 0 {
		c.Monitor.BarWidth = 10
	}
	if c.Monitor.TitleTemplate == "" {
		c.Monitor.TitleTemplate = "🖥️ Server Monitor - {hostname}"
	}
	if c.Telegram.PollTimeout <= 0 {
		c.Telegram.PollTimeout = 30
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSize <= 0 {
		c.Log.MaxSize = 50
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAge <= 0 {
		c.Log.MaxAge = 30
	}
	if c.Mail.Port <= 0 {
		c.Mail.Port = 25
	}
}

func (c *Config) validate() error {
	if c.Telegram.Token == "" {
		return errors.New("telegram.token 不能为空")
	}
	if c.Telegram.ChatID == 0 {
		return errors.New("telegram.chat_id 不能为空")
	}
	if c.Mail.Enabled {
		if c.Mail.Host == "" {
			return errors.New("mail.host 不能为空")
		}
		if len(c.Mail.To) == 0 {
			return errors.New("mail.to 不能为空")
		}
	}
	return nil
}
