// Package jsonl parses keys from JSON Lines data. This parser uses https://github.com/tidwall/gjson to
// process data, and locates the key within each line using a gjson path.
package jsonl
