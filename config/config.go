package config

import (
	"time"

	"github.com/spf13/viper"
)

// ContentConfig 描述内容来源：站点配置文件的地址、抓取行为和预加载策略。
type ContentConfig struct {
	// ConfigURL 是站点配置 markdown 的完整地址，类别文件的相对
	// 路径都以它所在目录为基准解析。
	ConfigURL string `mapstructure:"configURL"`

	// FetchTimeout 是单次 HTTP 抓取的超时时间。
	FetchTimeout time.Duration `mapstructure:"fetchTimeout"`

	UserAgent string `mapstructure:"userAgent"`

	// PreloadOnStart 为 true 时，服务启动后在后台预拉取全部类别内容。
	PreloadOnStart bool `mapstructure:"preloadOnStart"`

	// WorkerCount 控制预加载时的并发抓取数。
	WorkerCount int `mapstructure:"workerCount"`
}

type Config struct {
	Server struct {
		Port    string        `mapstructure:"port"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"server"`

	Logger struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"logger"`

	Content ContentConfig `mapstructure:"content"`
}

var C *Config

func LoadConfig(path string) (err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		return
	}

	err = v.Unmarshal(&C)
	return
}
