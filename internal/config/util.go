package config

import (
	"strconv"
	"strings"
)

func parseInt(value string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(value))
}

// splitList splits a comma separated value, dropping blank entries.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
