package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/course-api/internal/domain"
)

func newTestSearchService(catalog *fakeCatalogStore) *SearchServiceImpl {
	return NewSearchService(catalog, nil)
}

func TestSearchSubtopicTitleAndContent(t *testing.T) {
	svc := newTestSearchService(testCatalog())

	results, err := svc.Search(context.Background(), "linear")
	require.NoError(t, err)
	require.Len(t, results.Results, 1)

	result := results.Results[0]
	assert.Equal(t, "algebra-101", result.CourseID)
	require.Len(t, result.Matches, 2)

	// Title match comes before the content match for the same subtopic.
	title := result.Matches[0]
	assert.Equal(t, MatchTypeSubtopic, title.Type)
	assert.Equal(t, "Equations", title.TopicTitle)
	assert.Equal(t, "linear-eq", title.SubtopicID)
	assert.Equal(t, "Linear Equations", title.Snippet)

	content := result.Matches[1]
	assert.Equal(t, MatchTypeContent, content.Type)
	assert.Equal(t, "linear-eq", content.SubtopicID)
	assert.Equal(t, "Solving a linear equation means isolating x.", content.Snippet)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	svc := newTestSearchService(testCatalog())

	for _, query := range []string{"LINEAR", "Linear", "lInEaR"} {
		results, err := svc.Search(context.Background(), query)
		require.NoError(t, err)
		require.Len(t, results.Results, 1, "query %q", query)
	}
}

func TestSearchCourseTitleMatch(t *testing.T) {
	svc := newTestSearchService(testCatalog())

	results, err := svc.Search(context.Background(), "algebra")
	require.NoError(t, err)
	require.Len(t, results.Results, 1)

	matches := results.Results[0].Matches
	require.NotEmpty(t, matches)
	assert.Equal(t, MatchTypeCourse, matches[0].Type)
	assert.Equal(t, "Algebra 101", matches[0].Snippet)
	assert.Empty(t, matches[0].TopicTitle)

	// Description also contains "algebra" and yields a second course match.
	require.Len(t, matches, 2)
	assert.Equal(t, MatchTypeCourse, matches[1].Type)
	assert.Equal(t, "An introduction to algebra.", matches[1].Snippet)
}

func TestSearchTopicTitleMatch(t *testing.T) {
	svc := newTestSearchService(testCatalog())

	results, err := svc.Search(context.Background(), "graphing")
	require.NoError(t, err)
	require.Len(t, results.Results, 1)

	matches := results.Results[0].Matches
	require.Len(t, matches, 1)
	assert.Equal(t, MatchTypeTopic, matches[0].Type)
	assert.Equal(t, "Graphing", matches[0].TopicTitle)
	assert.Equal(t, "Graphing", matches[0].Snippet)
}

func TestSearchFiltersEmptyMatchCourses(t *testing.T) {
	svc := newTestSearchService(testCatalog())

	results, err := svc.Search(context.Background(), "quadratic")
	require.NoError(t, err)
	require.Len(t, results.Results, 1)
	for _, r := range results.Results {
		assert.NotEmpty(t, r.Matches)
	}
}

func TestSearchNoMatches(t *testing.T) {
	svc := newTestSearchService(testCatalog())

	results, err := svc.Search(context.Background(), "zzz-nothing")
	require.NoError(t, err)
	assert.Empty(t, results.Results)
}

func TestSearchEmptyQueryMatchesEverything(t *testing.T) {
	// Every string contains the empty substring, so a blank query returns
	// the whole catalog.
	svc := newTestSearchService(testCatalog())

	results, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, results.Results, 2)
	for _, r := range results.Results {
		assert.NotEmpty(t, r.Matches)
	}
}

func TestSearchPreservesCatalogOrder(t *testing.T) {
	catalog := testCatalog()
	catalog.courses[1].Description = "Also mentions equations here."
	svc := newTestSearchService(catalog)

	results, err := svc.Search(context.Background(), "equations")
	require.NoError(t, err)
	require.Len(t, results.Results, 2)
	assert.Equal(t, "algebra-101", results.Results[0].CourseID)
	assert.Equal(t, "empty-course", results.Results[1].CourseID)
}

func TestMakeSnippetWindowsLongText(t *testing.T) {
	prefix := strings.Repeat("a", 80)
	suffix := strings.Repeat("b", 80)
	text := prefix + "needle" + suffix

	snippet := makeSnippet(text, "needle")
	assert.True(t, strings.HasPrefix(snippet, "..."))
	assert.True(t, strings.HasSuffix(snippet, "..."))
	assert.Contains(t, snippet, "needle")
	// 50 chars each side plus the needle and two markers.
	assert.Len(t, snippet, 3+50+len("needle")+50+3)
}

func TestMakeSnippetStartOfText(t *testing.T) {
	text := "needle" + strings.Repeat("b", 80)

	snippet := makeSnippet(text, "needle")
	assert.True(t, strings.HasPrefix(snippet, "needle"))
	assert.True(t, strings.HasSuffix(snippet, "..."))
}

func TestMakeSnippetShortTextUnmarked(t *testing.T) {
	text := "short text with needle inside"
	assert.Equal(t, text, makeSnippet(text, "needle"))
}

func TestMakeSnippetFallbackWhenNeedleAbsent(t *testing.T) {
	long := strings.Repeat("x", 200)
	snippet := makeSnippet(long, "needle")
	assert.Equal(t, long[:150]+"...", snippet)

	short := "short field"
	assert.Equal(t, short, makeSnippet(short, "needle"))
}

func TestSearchMultipleCoursesAccumulateSeparately(t *testing.T) {
	catalog := &fakeCatalogStore{
		courses: []*domain.Course{
			{ID: "go-basics", Title: "Go Basics", Topics: []domain.Topic{
				{ID: "syntax", Title: "Syntax", Subtopics: []domain.Subtopic{
					{ID: "go-vars", Title: "Variables in Go"},
				}},
			}},
			{ID: "go-advanced", Title: "Advanced Go"},
		},
	}
	svc := newTestSearchService(catalog)

	results, err := svc.Search(context.Background(), "go")
	require.NoError(t, err)
	require.Len(t, results.Results, 2)
	assert.Len(t, results.Results[0].Matches, 2) // course title + subtopic title
	assert.Len(t, results.Results[1].Matches, 1)
}
