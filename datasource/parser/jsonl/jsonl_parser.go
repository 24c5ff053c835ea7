package jsonl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/errors"
)

// ParserConf configures a JSONL Parser
type ParserConf struct {
	KeyPath       string // The gjson path of the key within each line. Defaults to "key".
	HeaderLines   int    // The number of lines to ignore from the beginning of the data. Defaults to 0.
	Comment       rune   // Lines beginning with the comment character are ignored. Defaults to no comment character.
	MaxBufferSize int    // Maximum size in bytes of the buffer used to read lines
}

// Parser produces keys from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser
func CreateParser(conf *ParserConf) *Parser {
	if len(conf.KeyPath) == 0 {
		conf.KeyPath = "key"
	}
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	return &Parser{conf: conf}
}

// Parse reads keys from r, one per non-empty line. If count is positive, exactly count keys are read
// and an errors.InputUnderflowError is returned if r holds fewer; otherwise r is read to the end.
func (p *Parser) Parse(r io.Reader, count int) ([]hashagg.Key, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), p.conf.MaxBufferSize)
	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		if !scanner.Scan() {
			break
		}
	}
	var keys []hashagg.Key
	if count > 0 {
		keys = make([]hashagg.Key, 0, count)
	}
	lineNum := p.conf.HeaderLines
	for (count <= 0 || len(keys) < count) && scanner.Scan() {
		lineNum++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		if p.conf.Comment != 0 && strings.HasPrefix(trimmed, string(p.conf.Comment)) {
			continue
		}
		key, err := ParseJSONKey(line, p.conf.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		keys = append(keys, key)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if count > 0 && len(keys) < count {
		return nil, errors.InputUnderflowError{Want: count, Got: len(keys)}
	}
	return keys, nil
}

// ParseJSONKey extracts the unsigned integer at path from a line of JSON
func ParseJSONKey(line string, path string) (hashagg.Key, error) {
	if !gjson.Valid(line) {
		return 0, fmt.Errorf("invalid JSON: %q", line)
	}
	res := gjson.Get(line, path)
	if !res.Exists() {
		return 0, fmt.Errorf("no value at path %s", path)
	}
	switch res.Type {
	case gjson.Number:
		// res.Raw is the literal number, so fractions, exponents and signs are all refused
		key, err := strconv.ParseUint(res.Raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value %s at path %s is not an unsigned integer", res.Raw, path)
		}
		return key, nil
	case gjson.String:
		key, err := strconv.ParseUint(res.Str, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q at path %s is not an unsigned integer", res.Str, path)
		}
		return key, nil
	default:
		return 0, fmt.Errorf("value %s at path %s is not an unsigned integer", res.Raw, path)
	}
}
