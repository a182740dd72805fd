// Package frontmatter extracts article metadata from the header of a
// Markdown document.
package frontmatter

import (
	"encoding/json"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	adrg "github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Meta maps lower-cased keys to their ordered string values.
type Meta map[string][]string

var (
	metaLineRe  = regexp.MustCompile(`^[ ]{0,3}([A-Za-z0-9_-]+):\s*(.*)$`)
	metaMoreRe  = regexp.MustCompile(`^[ ]{4,}(.*)$`)
	metaBeginRe = regexp.MustCompile(`^-{3}(\s.*)?$`)
	metaEndRe   = regexp.MustCompile(`^(-{3}|\.{3})(\s.*)?$`)
)

// Parse extracts metadata from input. Delimited YAML (---), TOML (+++) and
// JSON (;;; or a bare {...} object) blocks are decoded by their format.
// Documents without such a block are read as a MultiMarkdown meta block of
// "key: value" lines, as is a --- block that is not YAML but consists only
// of meta lines.
func Parse(input string) (Meta, error) {
	if strings.TrimSpace(input) == "" {
		return Meta{}, nil
	}

	var (
		raw      map[string]any
		fallback Meta
		found    bool
	)
	yamlOrMeta := func(data []byte, v interface{}) error {
		err := yaml.Unmarshal(data, v)
		if err == nil {
			return nil
		}
		if meta, complete := readMetaLines(splitLines(string(data))); complete {
			fallback = meta
			return nil
		}
		return err
	}

	formats := []*adrg.Format{
		adrg.NewFormat("---", "---", decodeWith(yamlOrMeta, &found)),
		adrg.NewFormat("+++", "+++", decodeWith(toml.Unmarshal, &found)),
		adrg.NewFormat(";;;", ";;;", decodeWith(json.Unmarshal, &found)),
		{
			Start:           "{",
			End:             "}",
			Unmarshal:       decodeWith(json.Unmarshal, &found),
			UnmarshalDelims: true,
			RequiresNewLine: true,
		},
	}
	if _, err := adrg.Parse(strings.NewReader(input), &raw, formats...); err != nil {
		return nil, fmt.Errorf("parsing front matter: %w", err)
	}
	switch {
	case !found:
		return parseMetaBlock(input), nil
	case fallback != nil:
		return fallback, nil
	}

	// Keys that differ only in case merge into one. The values of an exact
	// lower-case key come first, the rest follow in key order.
	keys := slices.SortedFunc(maps.Keys(raw), func(a, b string) int {
		if la, lb := a == strings.ToLower(a), b == strings.ToLower(b); la != lb {
			if la {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})
	meta := make(Meta, len(raw))
	for _, key := range keys {
		k := strings.ToLower(key)
		meta[k] = append(meta[k], flatten(raw[key])...)
	}
	return meta, nil
}

// decodeWith wraps an unmarshal function so the caller learns whether a
// delimited block was present at all.
func decodeWith(unmarshal func([]byte, any) error, found *bool) adrg.UnmarshalFunc {
	return func(data []byte, v interface{}) error {
		*found = true
		return unmarshal(data, v)
	}
}

// flatten converts a decoded front matter value into its string values.
func flatten(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, flatten(item)...)
		}
		return out
	case []string:
		return append([]string(nil), v...)
	case []map[string]any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

// parseMetaBlock reads undelimited "key: value" header lines. Lines indented
// four or more spaces continue the previous key. The block ends at the first
// blank line, closing delimiter or unrecognised line.
func parseMetaBlock(input string) Meta {
	lines := splitLines(input)
	if len(lines) > 0 && metaBeginRe.MatchString(lines[0]) {
		lines = lines[1:]
	}
	meta, _ := readMetaLines(lines)
	return meta
}

// readMetaLines collects meta lines up to a blank line or closing delimiter.
// complete is false when it stopped at a line that is neither.
func readMetaLines(lines []string) (meta Meta, complete bool) {
	meta = Meta{}
	key := ""
	for _, line := range lines {
		if strings.TrimSpace(line) == "" || metaEndRe.MatchString(line) {
			return meta, true
		}
		if m := metaLineRe.FindStringSubmatch(line); m != nil {
			key = strings.ToLower(m[1])
			meta[key] = append(meta[key], strings.TrimSpace(m[2]))
			continue
		}
		if m := metaMoreRe.FindStringSubmatch(line); m != nil && key != "" {
			meta[key] = append(meta[key], strings.TrimSpace(m[1]))
			continue
		}
		return meta, false
	}
	return meta, true
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
