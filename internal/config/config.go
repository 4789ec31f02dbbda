package config

// Config is the root configuration for chime.
type Config struct {
	Feishu   FeishuConfig `json:"feishu" yaml:"feishu"`
	Toast    ToastConfig  `json:"toast" yaml:"toast"`
	LogLevel string       `json:"logLevel" yaml:"log_level"`
}

// FeishuConfig configures the Feishu group-webhook channel. The JSON keys
// match the config file documented for the upstream hook script.
type FeishuConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	WebhookURL string `json:"webhookUrl" yaml:"webhook_url"`
}

// ToastConfig configures the local desktop toast channel.
type ToastConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Command string `json:"command" yaml:"command"`
	AppName string `json:"appName" yaml:"app_name"`
}

// Defaults returns a Config with sensible default values. Both channels stay
// disabled until the user turns them on explicitly.
func Defaults() *Config {
	return &Config{
		LogLevel: "info",
		Toast: ToastConfig{
			Command: "powershell.exe",
			AppName: "chime",
		},
	}
}
