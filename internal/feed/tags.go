package feed

import "regexp"

// A tag is '#' followed by a run of word or CJK characters, the same
// alphabet the original pattern #([一-龥\w]+) accepted.
var tagRegex = regexp.MustCompile(`#([0-9A-Za-z_\x{4e00}-\x{9fa5}]+)`)

// ExtractTags scans content for hashtags, collapsing duplicates while
// preserving first-occurrence order.
func ExtractTags(content string) []string {
	matches := tagRegex.FindAllStringSubmatch(content, -1)
	var tags []string
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			tags = append(tags, m[1])
		}
	}
	return tags
}

// mergeTags appends extras to the extracted tags, keeping the same dedup
// and ordering rule across both sources.
func mergeTags(extracted, extras []string) []string {
	seen := make(map[string]bool, len(extracted)+len(extras))
	var tags []string
	for _, lists := range [][]string{extracted, extras} {
		for _, t := range lists {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			tags = append(tags, t)
		}
	}
	return tags
}
