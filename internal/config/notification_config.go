package config

// NotificationConfig defines configuration for notification channels.
// A channel whose credentials are absent is silently disabled rather than
// failing startup.
type NotificationConfig struct {
	WeChatToken  string   `json:"wechat_token,omitempty" yaml:"wechat_token,omitempty"`
	WeChatMethod string   `json:"wechat_method,omitempty" yaml:"wechat_method,omitempty" validate:"omitempty,wechatmethod"`
	EmailFrom    string   `json:"email_from,omitempty" yaml:"email_from,omitempty" validate:"omitempty,email"`
	EmailTo      []string `json:"email_to,omitempty" yaml:"email_to,omitempty" validate:"omitempty,dive,email"`
	SMTPHost     string   `json:"smtp_server,omitempty" yaml:"smtp_server,omitempty"`
	SMTPPort     int      `json:"smtp_port,omitempty" yaml:"smtp_port,omitempty" validate:"omitempty,min=1,max=65535"`
	SMTPPassword string   `json:"smtp_password,omitempty" yaml:"smtp_password,omitempty"`
	SecretsDir   string   `json:"secrets_dir,omitempty" yaml:"secrets_dir,omitempty"`
}

// WeChatEnabled reports whether a WeChat push channel can be constructed.
func (nc NotificationConfig) WeChatEnabled() bool {
	return nc.WeChatToken != ""
}

// EmailEnabled reports whether the email channel can be constructed.
func (nc NotificationConfig) EmailEnabled() bool {
	return len(nc.EmailTo) > 0 && nc.EmailFrom != "" && nc.SMTPHost != "" && nc.SMTPPassword != ""
}

// NewDefaultNotificationConfig creates default notification configuration.
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		WeChatMethod: DefaultWeChatMethod,
		SMTPPort:     DefaultSMTPPort,
		SecretsDir:   DefaultSecretsDir,
	}
}
