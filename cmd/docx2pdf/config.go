// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docx2pdf/pkg/types"
)

// setDefaults registers every configuration key so that environment
// variables (DOCX2PDF_SERVER_ADDR, ...) resolve even without a config file.
func setDefaults(d types.Config) {
	viper.SetDefault("conversion.method", string(d.Conversion.Method))
	viper.SetDefault("conversion.output_dir", d.Conversion.OutputDir)
	viper.SetDefault("conversion.pandoc.binary", d.Conversion.Pandoc.Binary)
	viper.SetDefault("conversion.pandoc.pdf_engine", d.Conversion.Pandoc.PDFEngine)
	viper.SetDefault("conversion.pandoc.image", d.Conversion.Pandoc.Image)
	viper.SetDefault("conversion.render.left", d.Conversion.Render.Left)
	viper.SetDefault("conversion.render.top", d.Conversion.Render.Top)
	viper.SetDefault("conversion.render.bottom", d.Conversion.Render.Bottom)
	viper.SetDefault("conversion.render.line_height", d.Conversion.Render.LineHeight)
	viper.SetDefault("conversion.render.font_size", d.Conversion.Render.FontSize)

	viper.SetDefault("server.addr", d.Server.Addr)
	viper.SetDefault("server.upload_dir", d.Server.UploadDir)
	viper.SetDefault("server.output_dir", d.Server.OutputDir)
	viper.SetDefault("server.max_upload_bytes", d.Server.MaxUploadBytes)
	viper.SetDefault("server.max_concurrent", d.Server.MaxConcurrent)
	viper.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	viper.SetDefault("client.timeout", d.Client.Timeout)
	viper.SetDefault("client.user_agent", d.Client.UserAgent)
	viper.SetDefault("client.max_retries", d.Client.MaxRetries)

	viper.SetDefault("history.dir", d.History.Dir)
	viper.SetDefault("history.max_results", d.History.MaxResults)

	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.format", d.Log.Format)
	viper.SetDefault("log.output", d.Log.Output)
}

// loadConfig assembles the effective configuration from defaults, the
// config file, DOCX2PDF_* variables and bound flags, in rising priority.
func loadConfig() (types.Config, error) {
	c := types.Config{
		Conversion: types.ConversionConfig{
			Method:    types.Method(viper.GetString("conversion.method")),
			OutputDir: viper.GetString("conversion.output_dir"),
			Pandoc: types.PandocConfig{
				Binary:    viper.GetString("conversion.pandoc.binary"),
				PDFEngine: viper.GetString("conversion.pandoc.pdf_engine"),
				Image:     viper.GetString("conversion.pandoc.image"),
			},
			Render: types.RenderConfig{
				Left:       viper.GetFloat64("conversion.render.left"),
				Top:        viper.GetFloat64("conversion.render.top"),
				Bottom:     viper.GetFloat64("conversion.render.bottom"),
				LineHeight: viper.GetFloat64("conversion.render.line_height"),
				FontSize:   viper.GetFloat64("conversion.render.font_size"),
			},
		},
		Server: types.ServerConfig{
			Addr:            viper.GetString("server.addr"),
			UploadDir:       viper.GetString("server.upload_dir"),
			OutputDir:       viper.GetString("server.output_dir"),
			MaxUploadBytes:  viper.GetInt64("server.max_upload_bytes"),
			MaxConcurrent:   viper.GetInt64("server.max_concurrent"),
			ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		},
		Client: types.HTTPConfig{
			Timeout:    viper.GetDuration("client.timeout"),
			UserAgent:  viper.GetString("client.user_agent"),
			MaxRetries: viper.GetInt("client.max_retries"),
		},
		History: types.HistoryConfig{
			Dir:        viper.GetString("history.dir"),
			MaxResults: viper.GetInt("history.max_results"),
		},
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
			Output: viper.GetString("log.output"),
		},
	}

	if !c.Conversion.Method.Valid() {
		return c, fmt.Errorf("conversion.method: unknown method %q (want one of %v)", c.Conversion.Method, types.Methods())
	}
	return c, nil
}

// bindFlags binds the running command's flags to configuration keys, as
// listed in its annotations (flag name -> key). Binding only the running
// command keeps commands that share a key from overriding each other.
func bindFlags(cmd *cobra.Command) error {
	for flag, key := range cmd.Annotations {
		if cmd.Flags().Lookup(flag) == nil {
			continue
		}
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}
