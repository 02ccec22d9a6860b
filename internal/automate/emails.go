package automate

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// ExtractEmails returns every distinct address in text, sorted without
// regard to case. Addresses differing only in case are kept separately.
func ExtractEmails(text string) []string {
	matches := emailRe.FindAllString(text, -1)

	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

// ExtractEmailFile pulls addresses out of inPath and writes them one per
// line to outPath. Nothing is written when no addresses are found.
func ExtractEmailFile(inPath, outPath string) (int, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", inPath, err)
	}

	emails := ExtractEmails(string(data))
	if len(emails) == 0 {
		return 0, nil
	}

	content := strings.Join(emails, "\n") + "\n"
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", outPath, err)
	}
	return len(emails), nil
}
