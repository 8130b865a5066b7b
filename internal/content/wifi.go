package content

import (
	"bufio"
	"strings"

	"snowbird_docs/internal/domain"
)

// LineScanner extracts wifi credentials from a document body: it finds the
// "## WiFi Access" heading (case-insensitive, matched by prefix), scans lines
// until the next "##" heading or end of text, and captures the remainder of the first
// "Network" and "Password" label lines. Partial matches are fine; a missing
// section yields an empty result. Runs on every render, inputs are tiny.
type LineScanner struct{}

var _ domain.WifiExtractor = LineScanner{}

func (LineScanner) Extract(body string) domain.WifiInfo {
	var info domain.WifiInfo
	if body == "" {
		return info
	}

	in := false
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "##") {
			if in {
				break // next section ends the block
			}
			in = isWifiHeading(line)
			continue
		}
		if !in {
			continue
		}
		if info.Network == nil {
			if v, ok := labelValue(line, "network"); ok {
				info.Network = &v
			}
		}
		if info.Password == nil {
			if v, ok := labelValue(line, "password"); ok {
				info.Password = &v
			}
		}
		if info.Network != nil && info.Password != nil {
			break
		}
	}
	return info
}

// isWifiHeading matches a level-2 "## WiFi Access" heading by prefix, so
// trailing words ("## WiFi Access Info") still open the block while deeper
// heading levels do not.
func isWifiHeading(line string) bool {
	rest, ok := strings.CutPrefix(line, "## ")
	if !ok {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(rest)), "wifi access")
}

// labelValue matches "<label><separators><value>" anywhere in the line,
// where separators are a run of colons, whitespace, asterisks, or dashes
// (so "**Network:** Foo" and "Network - Foo" both yield "Foo").
func labelValue(line, label string) (string, bool) {
	idx := strings.Index(strings.ToLower(line), label)
	if idx < 0 {
		return "", false
	}
	rest := line[idx+len(label):]
	trimmed := strings.TrimLeft(rest, ":*- \t")
	if trimmed == rest {
		return "", false // no separator after the label
	}
	v := strings.TrimSpace(trimmed)
	if v == "" {
		return "", false
	}
	return v, true
}
