package export

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/tcfw/powledger/pkg/ledger"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatMsgpack:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "mp", "msgp":
		return FormatMsgpack, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// Ext is the file extension written for the format
func (f Format) Ext() string {
	if f == FormatMsgpack {
		return "mp"
	}

	return string(f)
}

// FormatOf guesses the format of a snapshot file from its extension
func FormatOf(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Encode writes s to w in format f
func Encode(w io.Writer, f Format, s *ledger.Snapshot) error {
	switch f {
	case FormatJSON:
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return errors.Wrap(err, "marshaling json")
		}
		if _, err := w.Write(append(b, '\n')); err != nil {
			return errors.Wrap(err, "writing json")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return enc.Close()
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(s); err != nil {
			return errors.Wrap(err, "encoding msgpack")
		}
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", f)
	}

	return nil
}

// Decode reads a snapshot in format f from r
func Decode(r io.Reader, f Format) (*ledger.Snapshot, error) {
	s := &ledger.Snapshot{}

	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(s)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(s)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(s)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", f)
	}

	return s, nil
}
