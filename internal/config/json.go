package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly duration parsing. It exists so the JSON file can use
// human-readable durations ("24h", "5m") without leaking the Duration
// wrapper type into the main config structs.
type StructuredJSONConfig struct {
	Auth struct {
		TokenSignKey      string   `json:"token_sign_key"`
		TokenIssuer       string   `json:"token_issuer"`
		SessionDuration   Duration `json:"session_duration"`
		ChallengeDuration Duration `json:"challenge_duration"`
		BcryptCost        int      `json:"bcrypt_cost"`
		TOTPIssuer        string   `json:"totp_issuer"`
	} `json:"auth,omitempty"`

	Lockout struct {
		Threshold   int      `json:"threshold"`
		BackoffBase Duration `json:"backoff_base"`
		BackoffCap  Duration `json:"backoff_cap"`
	} `json:"lockout,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Audit struct {
		WebhookURL string `json:"webhook_url"`
		BufferSize int    `json:"buffer_size"`
	} `json:"audit,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Auth: Auth{
			TokenSignKey:      jsonCfg.Auth.TokenSignKey,
			TokenIssuer:       jsonCfg.Auth.TokenIssuer,
			SessionDuration:   time.Duration(jsonCfg.Auth.SessionDuration),
			ChallengeDuration: time.Duration(jsonCfg.Auth.ChallengeDuration),
			BcryptCost:        jsonCfg.Auth.BcryptCost,
			TOTPIssuer:        jsonCfg.Auth.TOTPIssuer,
		},
		Lockout: Lockout{
			Threshold:   jsonCfg.Lockout.Threshold,
			BackoffBase: time.Duration(jsonCfg.Lockout.BackoffBase),
			BackoffCap:  time.Duration(jsonCfg.Lockout.BackoffCap),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Audit: Audit{
			WebhookURL: jsonCfg.Audit.WebhookURL,
			BufferSize: jsonCfg.Audit.BufferSize,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return errors.New("invalid duration")
	}
}
