package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Secrets file names beneath NotificationConfig.SecretsDir.
const (
	wechatTokenFile = "wechat_token.txt"
	emailConfigFile = "email_config.json"
)

// emailSecrets mirrors the on-disk email_config.json layout. email_to accepts
// either a single address or a list.
type emailSecrets struct {
	EmailTo      stringList `json:"email_to"`
	EmailFrom    string     `json:"email_from"`
	SMTPServer   string     `json:"smtp_server"`
	SMTPPort     int        `json:"smtp_port"`
	SMTPPassword string     `json:"smtp_password"`
}

type stringList []string

func (sl *stringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*sl = []string{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("email_to must be a string or a list of strings")
	}
	*sl = many
	return nil
}

// ApplySecretsOverlay fills credential fields from the secrets directory and
// environment variables. Precedence: environment variable, then secrets file,
// then whatever the config file already set. Missing secrets are not errors;
// a channel without credentials simply stays disabled.
func ApplySecretsOverlay(cfg *GlobalConfig) error {
	nc := &cfg.NotificationConfig

	if nc.SecretsDir != "" {
		if err := overlayWeChatTokenFile(nc); err != nil {
			return err
		}
		if err := overlayEmailSecretsFile(nc); err != nil {
			return err
		}
	}

	overlayEnvironment(nc)
	return nil
}

func overlayWeChatTokenFile(nc *NotificationConfig) error {
	path := filepath.Join(nc.SecretsDir, wechatTokenFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read wechat token file '%s': %w", path, err)
	}
	if token := strings.TrimSpace(string(data)); token != "" && nc.WeChatToken == "" {
		nc.WeChatToken = token
	}
	return nil
}

func overlayEmailSecretsFile(nc *NotificationConfig) error {
	path := filepath.Join(nc.SecretsDir, emailConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read email config file '%s': %w", path, err)
	}

	var secrets emailSecrets
	if err := json.Unmarshal(data, &secrets); err != nil {
		return fmt.Errorf("failed to parse email config file '%s': %w", path, err)
	}

	if len(nc.EmailTo) == 0 {
		nc.EmailTo = secrets.EmailTo
	}
	if nc.EmailFrom == "" {
		nc.EmailFrom = secrets.EmailFrom
	}
	if nc.SMTPHost == "" {
		nc.SMTPHost = secrets.SMTPServer
	}
	if nc.SMTPPort == DefaultSMTPPort && secrets.SMTPPort != 0 {
		nc.SMTPPort = secrets.SMTPPort
	}
	if nc.SMTPPassword == "" {
		nc.SMTPPassword = secrets.SMTPPassword
	}
	return nil
}

func overlayEnvironment(nc *NotificationConfig) {
	if token := os.Getenv("WECHAT_TOKEN"); token != "" {
		nc.WeChatToken = token
	}
	if method := os.Getenv("WECHAT_METHOD"); method != "" {
		nc.WeChatMethod = method
	}
	if to := os.Getenv("EMAIL_TO"); to != "" {
		parts := strings.Split(to, ",")
		recipients := make([]string, 0, len(parts))
		for _, p := range parts {
			if addr := strings.TrimSpace(p); addr != "" {
				recipients = append(recipients, addr)
			}
		}
		nc.EmailTo = recipients
	}
	if from := os.Getenv("EMAIL_FROM"); from != "" {
		nc.EmailFrom = from
	}
	if host := os.Getenv("SMTP_SERVER"); host != "" {
		nc.SMTPHost = host
	}
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			nc.SMTPPort = port
		}
	}
	if pass := os.Getenv("SMTP_PASSWORD"); pass != "" {
		nc.SMTPPassword = pass
	}
}
