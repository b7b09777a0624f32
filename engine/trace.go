package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/aiadventure/types"
)

// TraceLines renders the events of a step for debug output, one line per
// event with its data in key order.
func TraceLines(result types.Result) []string {
	if len(result.Events) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("[trace] Events: %d", len(result.Events))}
	for _, e := range result.Events {
		lines = append(lines, fmt.Sprintf("[trace]   %s%s", e.Type, formatData(e.Data)))
	}
	return lines
}

func formatData(data map[string]any) string {
	if len(data) == 0 {
		return ""
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, data[k])
	}
	return b.String()
}
