// Package config defines the CLI structure and configuration for hidplus.
package config

import (
	"github.com/Alia5/hidplus/internal/cmd"
)

type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"HIDPLUS_LOG_LEVEL"`
	File    string `help:"Log file path (default: none; logs only to console)" env:"HIDPLUS_LOG_FILE"`
	RawFile string `help:"Datagram hex dump file path (default: none)" env:"HIDPLUS_LOG_RAW_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log `embed:"" prefix:"log."`

	Config string `help:"Configuration file to load before the default locations" type:"path" env:"HIDPLUS_CONFIG"`

	Client  cmd.Client        `cmd:"" default:"withargs" help:"Send local gamepads to a receiver (default command)"`
	Monitor cmd.Monitor       `cmd:"" help:"Receive and decode client packets for debugging"`
	Cfg     cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
