package summary

// Structured is the breakdown of a markdown summary into summary text,
// key points and sections. Fields default to empty, never nil, so the
// JSON shape is stable for consumers.
type Structured struct {
	Summary   string    `json:"summary"`
	KeyPoints []string  `json:"keyPoints"`
	Sections  []Section `json:"sections"`
}

type Section struct {
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Subsections []Subsection `json:"subsections"`
}

type Subsection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
