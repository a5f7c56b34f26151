package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCoursesReturnsSummaries(t *testing.T) {
	svc := NewCourseService(testCatalog(), nil)

	summaries, err := svc.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	algebra := summaries[0]
	assert.Equal(t, "algebra-101", algebra.ID)
	assert.Equal(t, "Algebra 101", algebra.Title)
	assert.Equal(t, 2, algebra.TopicCount)
	assert.Equal(t, 4, algebra.SubtopicCount)

	empty := summaries[1]
	assert.Equal(t, "empty-course", empty.ID)
	assert.Equal(t, 0, empty.TopicCount)
	assert.Equal(t, 0, empty.SubtopicCount)
}

func TestGetCourseReturnsFullTree(t *testing.T) {
	svc := NewCourseService(testCatalog(), nil)

	course, err := svc.GetCourse(context.Background(), "algebra-101")
	require.NoError(t, err)
	require.Len(t, course.Topics, 2)
	assert.Equal(t, "Equations", course.Topics[0].Title)
	assert.Len(t, course.Topics[0].Subtopics, 2)
}

func TestGetCourseNotFound(t *testing.T) {
	svc := NewCourseService(testCatalog(), nil)

	_, err := svc.GetCourse(context.Background(), "no-such-course")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
