package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Configs holds everything the service reads from the environment.
// Every key has a default so the binary runs without any configuration;
// notifications and video detection stay disabled until their settings
// are provided.
type Configs struct {
	ListenAddress string `mapstructure:"listen_address"`
	Environment   string `mapstructure:"env"`
	LogLevel      string `mapstructure:"log_level"`

	// Event store (sqlite file path)
	DBPath string `mapstructure:"db_path"`

	// Redis, used for the alert cooldown counters. Optional.
	RedisURL string `mapstructure:"redis_url"`

	// Confirmation filter
	MinConfidenceThreshold     float64 `mapstructure:"min_confidence_threshold"`
	EventHistoryWindow         int     `mapstructure:"event_history_window"`
	EventConfirmationThreshold int     `mapstructure:"event_confirmation_threshold"`

	// Notification policy
	NotifyTypes               string  `mapstructure:"notify_types"`
	NotifyConfidenceThreshold float64 `mapstructure:"notify_confidence_threshold"`
	NotifyWorkers             int     `mapstructure:"notify_workers"`
	NotifyQueueSize           int     `mapstructure:"notify_queue_size"`
	NotifyCooldownSeconds     int     `mapstructure:"notify_cooldown_seconds"`
	SendTimeoutSeconds        int     `mapstructure:"send_timeout_seconds"`

	// Twilio gateway
	TwilioAccountSID  string `mapstructure:"twilio_account_sid"`
	TwilioAuthToken   string `mapstructure:"twilio_auth_token"`
	TwilioSMSFrom     string `mapstructure:"twilio_sms_from"`
	TwilioWAFrom      string `mapstructure:"twilio_wa_from"`
	EmergencyContacts string `mapstructure:"emergency_contacts"`

	// Video temporal smoother
	DetectorURL            string `mapstructure:"detector_url"`
	DetectorTimeoutSeconds int    `mapstructure:"detector_timeout_seconds"`
	FrameSequenceLength    int    `mapstructure:"frame_sequence_length"`
	PredictionWindow       int    `mapstructure:"prediction_window"`
}

var configDefaults = map[string]interface{}{
	"listen_address": "127.0.0.1:8080",
	"env":            "",
	"log_level":      "info",

	"db_path":   "security.db",
	"redis_url": "",

	"min_confidence_threshold":     0.6,
	"event_history_window":         5,
	"event_confirmation_threshold": 3,

	"notify_types":                "scream,glass_break,alarm,knife,gun",
	"notify_confidence_threshold": 0.75,
	"notify_workers":              2,
	"notify_queue_size":           64,
	"notify_cooldown_seconds":     60,
	"send_timeout_seconds":        5,

	"twilio_account_sid": "",
	"twilio_auth_token":  "",
	"twilio_sms_from":    "",
	"twilio_wa_from":     "",
	"emergency_contacts": "",

	"detector_url":             "",
	"detector_timeout_seconds": 10,
	"frame_sequence_length":    16,
	"prediction_window":        5,
}

func loadConfig() (Configs, error) {
	viper.AutomaticEnv()
	for key, value := range configDefaults {
		viper.SetDefault(key, value)
	}

	var cfg Configs
	if err := viper.Unmarshal(&cfg); err != nil {
		return Configs{}, fmt.Errorf("unmarshal config from environment: %w", err)
	}

	return cfg, nil
}

// splitList parses a comma separated config value, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
