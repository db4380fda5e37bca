package controllers

import (
	"testing"
	"time"

	"darakbang/models"

	"github.com/stretchr/testify/assert"
)

func TestSortUsersByCreatedAtDesc(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	nick := func(s string) *string { return &s }

	users := []models.User{
		{Nickname: nick("middle"), CreatedAt: base.Add(time.Hour)},
		{Nickname: nick("oldest")}, // zero CreatedAt sinks to the end
		{Nickname: nick("newest"), CreatedAt: base.Add(2 * time.Hour)},
		{Nickname: nick("tied-first"), CreatedAt: base},
		{Nickname: nick("tied-second"), CreatedAt: base},
	}

	sortUsersByCreatedAtDesc(users)

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, *u.Nickname)
	}
	assert.Equal(t, []string{"newest", "middle", "tied-first", "tied-second", "oldest"}, names)
}
