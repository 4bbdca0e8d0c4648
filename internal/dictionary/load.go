package dictionary

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

//go:embed dictionary.yaml
var defaultDictionary []byte

// keyDelimiter replaces viper's "." so skill names like "node.js" stay intact as map keys.
const keyDelimiter = "::"

// Default returns the dictionary bundled with the binary.
func Default() (*Dictionary, error) {
	d, err := Parse(bytes.NewReader(defaultDictionary), "yaml")
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return d, nil
}

// Load reads a dictionary file. An empty path selects the bundled dictionary.
// The format is taken from the file extension (yaml, yml, json or toml).
func Load(path string) (*Dictionary, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}

	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	d, err := decode(v)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return d, nil
}

// Parse decodes a dictionary from r in the given format.
func Parse(r io.Reader, format string) (*Dictionary, error) {
	format = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
	if format == "" {
		format = "yaml"
	}

	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("read %s dictionary: %w", format, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Dictionary, error) {
	var file File
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &file,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("decode dictionary: %w", err)
	}

	return New(file)
}
