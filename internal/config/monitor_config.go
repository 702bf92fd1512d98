package config

import (
	"time"
)

// MonitorConfig defines configuration for the availability poll loop.
type MonitorConfig struct {
	TargetURL            string   `json:"target_url,omitempty" yaml:"target_url,omitempty" validate:"omitempty,url"`
	CheckIntervalSeconds int      `json:"check_interval_seconds,omitempty" yaml:"check_interval_seconds,omitempty" validate:"omitempty,min=1"`
	NotifyFloorPlans     []string `json:"notify_floor_plans,omitempty" yaml:"notify_floor_plans,omitempty" validate:"omitempty,dive,plancode"`
	NotifyMinBedrooms    int      `json:"notify_min_bedrooms,omitempty" yaml:"notify_min_bedrooms,omitempty" validate:"omitempty,min=0"`
}

// CheckInterval returns the poll interval as a duration.
func (mc MonitorConfig) CheckInterval() time.Duration {
	return time.Duration(mc.CheckIntervalSeconds) * time.Second
}

// NewDefaultMonitorConfig creates default monitor configuration.
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		TargetURL:            DefaultTargetURL,
		CheckIntervalSeconds: DefaultCheckIntervalSeconds,
		NotifyFloorPlans:     append([]string(nil), DefaultNotifyFloorPlans...),
		NotifyMinBedrooms:    DefaultNotifyMinBedrooms,
	}
}
