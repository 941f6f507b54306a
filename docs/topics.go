// Package docs embeds the help topics served by the topic command.
package docs

import (
	"embed"
	"fmt"
	"slices"
	"strings"
)

//go:embed *.md
var pages embed.FS

// GetTopic returns the raw markdown of one topic.
func GetTopic(topic string) (string, error) {
	content, err := pages.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics concatenates the given topics in order. A "*" entry expands
// to every topic except the readme.
func GetTopics(names ...string) (string, error) {
	var expanded []string
	for _, name := range names {
		if name != "*" {
			expanded = append(expanded, name)
			continue
		}
		all, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		expanded = append(expanded, all...)
	}

	var b strings.Builder
	for _, name := range expanded {
		content, err := GetTopic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics lists every topic name except the readme, sorted.
func GetAllTopics() ([]string, error) {
	entries, err := pages.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if name != "readme" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}
