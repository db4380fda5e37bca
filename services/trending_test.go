package services

import (
	"testing"

	"darakbang/models"

	"github.com/stretchr/testify/assert"
)

func TestTrendingScore(t *testing.T) {
	p := models.Post{
		Likes:         []string{"u1", "u2"},
		CommentsCount: 3,
		Views:         7,
	}
	// 2 likes * 5 + 3 comments * 10 + 7 views
	assert.Equal(t, int64(47), TrendingScore(p))
}

func TestTopTrendingOrdersByScore(t *testing.T) {
	posts := []models.Post{
		{Title: "quiet", Views: 1},
		{Title: "hot", CommentsCount: 10, Views: 5},
		{Title: "liked", Likes: []string{"a", "b", "c"}},
	}

	top := TopTrending(posts, 2)

	assert.Len(t, top, 2)
	assert.Equal(t, "hot", top[0].Title)
	assert.Equal(t, "liked", top[1].Title)
}

func TestTopTrendingStableTies(t *testing.T) {
	posts := []models.Post{
		{Title: "newer", Views: 10},
		{Title: "older", Views: 10},
	}

	top := TopTrending(posts, 2)

	assert.Equal(t, "newer", top[0].Title)
	assert.Equal(t, "older", top[1].Title)
}

func TestTopTrendingShortInput(t *testing.T) {
	posts := []models.Post{{Title: "only"}}
	assert.Len(t, TopTrending(posts, 5), 1)
	assert.Empty(t, TopTrending(nil, 5))

	// input order untouched
	many := []models.Post{{Title: "a"}, {Title: "b", Views: 3}}
	TopTrending(many, 1)
	assert.Equal(t, "a", many[0].Title)
}
