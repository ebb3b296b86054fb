package config

import (
	"github.com/spf13/viper"
	"github.com/tcfw/powledger/internal/export"
)

type Export struct {
	Dir    string
	Format export.Format
}

const (
	Cfg_export_dir    = "export.dir"
	Cfg_export_format = "export.format"
)

var (
	exportDefaults = map[string]interface{}{
		Cfg_export_dir:    ".",
		Cfg_export_format: string(export.FormatJSON),
	}
)

func init() {
	for k, v := range exportDefaults {
		viper.SetDefault(k, v)
	}
}

func buildExportConfig() (*Export, error) {
	f, err := export.ParseFormat(viper.GetString(Cfg_export_format))
	if err != nil {
		return nil, err
	}

	return &Export{
		Dir:    viper.GetString(Cfg_export_dir),
		Format: f,
	}, nil
}
