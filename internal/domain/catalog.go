package domain

import "errors"

// Common validation errors for catalog entities.
var (
	ErrEmptyCourseID      = errors.New("course ID cannot be empty")
	ErrEmptyCourseTitle   = errors.New("course title cannot be empty")
	ErrEmptyTopicID       = errors.New("topic ID cannot be empty")
	ErrEmptyTopicTitle    = errors.New("topic title cannot be empty")
	ErrEmptySubtopicID    = errors.New("subtopic ID cannot be empty")
	ErrEmptySubtopicTitle = errors.New("subtopic title cannot be empty")
)

// Course is the root of the catalog hierarchy. Topics are held as an
// ordered child list; children never point back at their parents, so the
// catalog forms a simple tree that is safe to share between requests.
type Course struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Topics      []Topic `json:"topics,omitempty"`
}

// Topic is an ordered group of subtopics within a course.
type Topic struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Subtopics []Subtopic `json:"subtopics,omitempty"`
}

// Subtopic is the smallest completable unit of a course. Content is the
// free text a learner studies and search scans.
type Subtopic struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

// Validate checks the course and its entire child tree.
func (c *Course) Validate() error {
	if c.ID == "" {
		return ErrEmptyCourseID
	}
	if c.Title == "" {
		return ErrEmptyCourseTitle
	}
	for i := range c.Topics {
		if err := c.Topics[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the topic and its subtopics.
func (t *Topic) Validate() error {
	if t.ID == "" {
		return ErrEmptyTopicID
	}
	if t.Title == "" {
		return ErrEmptyTopicTitle
	}
	for i := range t.Subtopics {
		if err := t.Subtopics[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks required subtopic fields. Content may be empty.
func (s *Subtopic) Validate() error {
	if s.ID == "" {
		return ErrEmptySubtopicID
	}
	if s.Title == "" {
		return ErrEmptySubtopicTitle
	}
	return nil
}

// SubtopicCount returns the total number of subtopics across all topics.
func (c *Course) SubtopicCount() int {
	n := 0
	for i := range c.Topics {
		n += len(c.Topics[i].Subtopics)
	}
	return n
}

// SubtopicTitles returns a lookup from subtopic ID to title for every
// subtopic in the course.
func (c *Course) SubtopicTitles() map[string]string {
	titles := make(map[string]string, c.SubtopicCount())
	for i := range c.Topics {
		for j := range c.Topics[i].Subtopics {
			sub := &c.Topics[i].Subtopics[j]
			titles[sub.ID] = sub.Title
		}
	}
	return titles
}
