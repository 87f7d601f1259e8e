package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/Alia5/hidplus/internal/configpaths"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file for a specific command.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"Command to generate config for" enum:"client,monitor"`
	Format  string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output  string `help:"Destination file path (defaults to <command>.<format> in the working directory)"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

// Run writes a template built from the command's flag defaults. Keys use
// the names Kong's config loaders look up: snake_case, nested on dots.
func (c *ConfigInit) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	root, err := Template(c.Command)
	if err != nil {
		return err
	}

	dest := c.Output
	if dest == "" {
		dest = c.Command + "." + configpaths.Extension(format)
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	var data []byte
	switch format {
	case "json":
		data, err = json.MarshalIndent(root, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(root)
	case "toml":
		data, err = toml.Marshal(root)
	}
	if err != nil {
		return fmt.Errorf("encode %s template: %w", format, err)
	}
	return os.WriteFile(dest, data, 0o644)
}

// Template returns the default configuration tree of a command.
func Template(command string) (map[string]any, error) {
	switch command {
	case "client":
		return buildMapFromStruct(reflect.TypeOf(Client{})), nil
	case "monitor":
		return buildMapFromStruct(reflect.TypeOf(Monitor{})), nil
	default:
		return nil, errors.New("unknown command; expected 'client' or 'monitor'")
	}
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// snakeCase turns a Go field name or a kebab-case flag name into the
// snake_case key Kong resolvers accept.
func snakeCase(s string) string {
	var b strings.Builder
	r := []rune(s)
	for i, c := range r {
		switch {
		case c == '-':
			b.WriteRune('_')
		case unicode.IsUpper(c):
			prevLower := i > 0 && (unicode.IsLower(r[i-1]) || unicode.IsDigit(r[i-1]))
			nextLower := i > 0 && i+1 < len(r) && unicode.IsUpper(r[i-1]) && unicode.IsLower(r[i+1])
			if prevLower || nextLower {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(c))
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

func setPath(out map[string]any, path []string, val any) {
	for _, p := range path[:len(path)-1] {
		sub, ok := out[p].(map[string]any)
		if !ok {
			sub = map[string]any{}
			out[p] = sub
		}
		out = sub
	}
	out[path[len(path)-1]] = val
}

func buildMapFromStruct(t reflect.Type) map[string]any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Tag.Get("kong") == "-" {
			continue
		}
		// Positional arguments are never read from config files.
		if _, ok := f.Tag.Lookup("arg"); ok {
			continue
		}

		if _, ok := f.Tag.Lookup("embed"); ok {
			name := strings.TrimSuffix(f.Tag.Get("prefix"), ".")
			sub := buildMapFromStruct(f.Type)
			if name != "" {
				out[name] = sub
			} else {
				for k, v := range sub {
					out[k] = v
				}
			}
			continue
		}

		name := f.Tag.Get("name")
		if name == "" {
			name = f.Name
		}
		parts := strings.Split(name, ".")
		for j := range parts {
			parts[j] = snakeCase(parts[j])
		}
		if val := defaultValueForField(f.Type, f.Tag.Get("default")); val != nil {
			setPath(out, parts, val)
		}
	}
	return out
}

func defaultValueForField(t reflect.Type, def string) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "time" && t.Name() == "Duration" {
		if def != "" {
			return def
		}
		return "0s"
	}
	switch t.Kind() {
	case reflect.String:
		return def
	case reflect.Bool:
		b, err := strconv.ParseBool(def)
		if err != nil {
			return false
		}
		return b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(def, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(def, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(def, 64)
		if err != nil {
			return 0
		}
		return f
	case reflect.Struct:
		return buildMapFromStruct(t)
	default:
		return nil
	}
}
