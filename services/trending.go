package services

import (
	"sort"

	"darakbang/models"
)

// TrendingScore weighs engagement signals: a comment is worth ten views, a
// like five.
func TrendingScore(p models.Post) int64 {
	return int64(len(p.Likes))*5 + p.CommentsCount*10 + p.Views
}

// TopTrending returns the n highest-scoring posts, ties broken by the posts'
// given order (newest first as fetched).
func TopTrending(posts []models.Post, n int) []models.Post {
	ranked := make([]models.Post, len(posts))
	copy(ranked, posts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return TrendingScore(ranked[i]) > TrendingScore(ranked[j])
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
