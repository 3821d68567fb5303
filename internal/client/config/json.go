package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gallery/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent fields
// leave the current value untouched.
type JsonConfig struct {
	Backend     *string `json:"backend"`
	DatabaseDSN *string `json:"database_dsn"`
	LogLevel    *string `json:"log_level"`
	Color       *string `json:"color"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	for dst, v := range map[*string]*string{
		&cfg.Backend:     jc.Backend,
		&cfg.DatabaseDSN: jc.DatabaseDSN,
		&cfg.LogLevel:    jc.LogLevel,
		&cfg.Color:       jc.Color,
	} {
		if v != nil {
			*dst = *v
		}
	}
	return nil
}
