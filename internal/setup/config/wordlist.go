package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/bytedance/sonic"
)

// WordlistFileName is the optional filter wordlist read next to bot.toml.
const WordlistFileName = "wordlist.json"

// Wordlist holds extra filter terms maintained outside bot.toml.
type Wordlist struct {
	// Terms that get a message deleted.
	ForbiddenWords []string `json:"forbiddenWords"`
	// Domains allowed in links.
	AllowedDomains []string `json:"allowedDomains"`
}

// LoadWordlist loads the wordlist from the config directory. A missing file
// yields an empty wordlist.
func LoadWordlist(configPath string) (*Wordlist, error) {
	wordlistPath := configPath + "/" + WordlistFileName

	// Read wordlist file
	data, err := os.ReadFile(wordlistPath)
	if errors.Is(err, fs.ErrNotExist) {
		return &Wordlist{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read wordlist file: %w", err)
	}

	// Parse wordlist
	var wordlist Wordlist
	if err := sonic.Unmarshal(data, &wordlist); err != nil {
		return nil, fmt.Errorf("failed to parse wordlist JSON: %w", err)
	}

	return &wordlist, nil
}

// MergeInto appends the wordlist terms not already present in the filter.
func (w *Wordlist) MergeInto(filter *Filter) {
	for _, word := range w.ForbiddenWords {
		if !slices.Contains(filter.ForbiddenWords, word) {
			filter.ForbiddenWords = append(filter.ForbiddenWords, word)
		}
	}

	for _, domain := range w.AllowedDomains {
		if !slices.Contains(filter.AllowedDomains, domain) {
			filter.AllowedDomains = append(filter.AllowedDomains, domain)
		}
	}
}
