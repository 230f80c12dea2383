// Package document loads parsed SIE documents from disk.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"

	"github.com/cleared-dev/siereport/internal/logger"
	"github.com/cleared-dev/siereport/internal/model"
)

// Format is the encoding of a document file.
type Format string

const (
	FormatJSON  Format = "json"
	FormatHJSON Format = "hjson"
)

// ErrEmpty is returned for a document with no content.
var ErrEmpty = errors.New("document is empty")

// FormatOf picks the format from a file extension. Anything but .hjson is JSON.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".hjson") {
		return FormatHJSON
	}
	return FormatJSON
}

// Load reads and normalizes the document at path. "-" reads stdin.
func Load(ctx context.Context, path string) (*model.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	doc, err := Parse(ctx, data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a document. Malformed JSON is repaired once before giving up.
func Parse(ctx context.Context, data []byte, format Format) (*model.Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmpty
	}
	if format == FormatHJSON {
		converted, err := fromHJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	var doc model.Document
	err := json.Unmarshal(data, &doc)
	var syntaxErr *json.SyntaxError
	if err != nil && errors.As(err, &syntaxErr) {
		repaired, rerr := jsonrepair.RepairJSON(string(data))
		if rerr != nil {
			return nil, fmt.Errorf("repairing json: %w", rerr)
		}
		log := logger.FromContext(ctx)
		log.Warn().Int64("offset", syntaxErr.Offset).Msg("document is not valid JSON, using repaired copy")
		doc = model.Document{}
		err = json.Unmarshal([]byte(repaired), &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

func fromHJSON(data []byte) ([]byte, error) {
	var tree any
	if err := hjson.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decoding hjson: %w", err)
	}
	out, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("converting hjson: %w", err)
	}
	return out, nil
}
