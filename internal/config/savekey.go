package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// SaveAPIKey writes the AI API key into the [ai] section of config.toml,
// creating the file from the default template when missing. An existing
// api_key line (commented or not) is replaced; otherwise the key is inserted
// right after the [ai] header, or a new [ai] section is appended. The rest of
// the file is left untouched. Returns the config file path.
func SaveAPIKey(dir, apiKey string) (string, error) {
	return editConfig(dir, func(text string) string {
		return setSectionValue(text, "ai", "api_key", apiKey)
	})
}

// SaveSyncSettings writes the generated salt and, when non-empty, the Gist ID
// into the [sync] section of config.toml. Same editing rules as SaveAPIKey.
func SaveSyncSettings(dir, salt, gistID string) (string, error) {
	return editConfig(dir, func(text string) string {
		text = setSectionValue(text, "sync", "salt", salt)
		if gistID != "" {
			text = setSectionValue(text, "sync", "gist_id", gistID)
		}
		return text
	})
}

// editConfig loads config.toml (creating it from the template when missing),
// applies edit and writes the result back. Returns the config file path.
func editConfig(dir string, edit func(string) string) (string, error) {
	cfg := defaults(dir)
	path := cfg.ConfigFile()

	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return "", fmt.Errorf("create chronicle dir: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte(DefaultConfigTOML()), 0o600); err != nil {
			return "", fmt.Errorf("write config: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read config: %w", err)
	}

	if err := os.WriteFile(path, []byte(edit(string(data))), 0o600); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

var sectionHeaderPattern = regexp.MustCompile(`(?m)^\[`)

// setSectionValue replaces the first `key = ...` line (commented or not)
// inside the `[section]` body with the quoted value, inserts it right after
// the section header, or appends a new section, in that order of preference.
// The key search never leaves the section, so a same-named key elsewhere in
// the file is untouched. Comments elsewhere survive.
func setSectionValue(text, section, key, value string) string {
	line := fmt.Sprintf("%s = %q", key, value)
	sectionPattern := regexp.MustCompile(`(?m)^\[` + regexp.QuoteMeta(section) + `\]\s*$`)
	linePattern := regexp.MustCompile(`(?m)^#?\s*` + regexp.QuoteMeta(key) + `\s*=.*$`)

	loc := sectionPattern.FindStringIndex(text)
	if loc == nil {
		return strings.TrimRight(text, "\n") + fmt.Sprintf("\n\n[%s]\n", section) + line + "\n"
	}

	bodyStart := loc[1]
	if bodyStart < len(text) && text[bodyStart] == '\n' {
		bodyStart++
	}
	bodyEnd := len(text)
	if next := sectionHeaderPattern.FindStringIndex(text[bodyStart:]); next != nil {
		bodyEnd = bodyStart + next[0]
	}

	if kloc := linePattern.FindStringIndex(text[bodyStart:bodyEnd]); kloc != nil {
		return text[:bodyStart+kloc[0]] + line + text[bodyStart+kloc[1]:]
	}
	return text[:bodyStart] + line + "\n" + text[bodyStart:]
}
