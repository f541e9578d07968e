package conserje

import (
	"bufio"
	"bytes"
	"strings"
)

// splitList splits a "|" separated cell into its trimmed, non-empty parts
// and applies the token fixes to each. A part may be as long as s itself.
func splitList(s string) []string {
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Buffer(make([]byte, 0, 4096), len(s)+1)
	sc.Split(scanPipes)
	res := []string{}
	for sc.Scan() {
		part := strings.TrimSpace(sc.Text())
		if part == "" {
			continue
		}
		for _, fix := range TokenFixes {
			part = strings.ReplaceAll(part, fix.From, fix.To)
		}
		res = append(res, part)
	}
	return res
}

func scanPipes(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.IndexByte(data, '|'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}
