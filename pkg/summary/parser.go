package summary

import "strings"

// Parse splits markdown notes into the structured summary shape.
//
// This is deliberately a single-pass heuristic over blank-line separated
// paragraphs, not a markdown grammar: the first non-header paragraph is the
// summary, a paragraph mentioning key/main points contributes its bullet
// lines, "## " opens a section and "### " a subsection within it. Downstream
// consumers depend on this exact shape, including its failure modes (no
// headers yields empty sections).
func Parse(markdown string) *Structured {
	result := &Structured{
		KeyPoints: []string{},
		Sections:  []Section{},
	}

	paragraphs := splitParagraphs(markdown)
	if len(paragraphs) == 0 {
		return result
	}

	for _, p := range paragraphs {
		if !strings.HasPrefix(p, "#") {
			result.Summary = p
			break
		}
	}

	for _, p := range paragraphs {
		lower := strings.ToLower(p)
		if strings.Contains(lower, "key points") || strings.Contains(lower, "main points") {
			result.KeyPoints = bulletLines(p)
			break
		}
	}

	var current *Section
	var sub *Subsection

	for _, p := range paragraphs {
		switch {
		case strings.HasPrefix(p, "## "):
			title, rest := splitHeader(p, "##")
			result.Sections = append(result.Sections, Section{
				Title:       title,
				Content:     rest,
				Subsections: []Subsection{},
			})
			current = &result.Sections[len(result.Sections)-1]
			sub = nil

		case strings.HasPrefix(p, "### ") && current != nil:
			title, rest := splitHeader(p, "###")
			current.Subsections = append(current.Subsections, Subsection{
				Title:   title,
				Content: rest,
			})
			sub = &current.Subsections[len(current.Subsections)-1]

		case current != nil:
			if sub != nil {
				sub.Content += p + "\n\n"
			} else {
				current.Content += p + "\n\n"
			}
		}
	}

	return result
}

func splitParagraphs(markdown string) []string {
	parts := strings.Split(markdown, "\n\n")
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// splitHeader takes a paragraph starting with the given marker and returns
// the header text from the first line plus any remaining lines as initial
// content (suffixed with a paragraph break, matching how plain paragraphs
// are appended).
func splitHeader(paragraph, marker string) (title, content string) {
	lines := strings.SplitN(paragraph, "\n", 2)
	title = strings.TrimLeft(strings.TrimPrefix(lines[0], marker), " ")
	if len(lines) == 2 && strings.TrimSpace(lines[1]) != "" {
		content = lines[1] + "\n\n"
	}
	return title, content
}

func bulletLines(paragraph string) []string {
	points := []string{}
	for _, line := range strings.Split(paragraph, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "-") {
			point := strings.TrimSpace(strings.TrimLeft(trimmed, "*- "))
			if point != "" {
				points = append(points, point)
			}
		}
	}
	return points
}
