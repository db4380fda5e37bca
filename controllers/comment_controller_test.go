package controllers

import (
	"encoding/json"
	"testing"

	"darakbang/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCommentWithPostMarshalsFlat(t *testing.T) {
	row := commentWithPost{
		Comment: models.Comment{
			ID:   primitive.NewObjectID(),
			Text: "hello",
		},
		PostTitle: "Weekend Plans",
	}

	data, err := json.Marshal(row)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &decoded))

	// embedded comment fields promote to the top level next to postTitle
	assert.Equal(t, "hello", decoded["text"])
	assert.Equal(t, "Weekend Plans", decoded["postTitle"])
	assert.NotContains(t, decoded, "Comment")
}

func TestDisplayName(t *testing.T) {
	name := "otter"
	assert.Equal(t, "otter", displayName(models.Comment{UserName: &name}))
	assert.Equal(t, "anonymous", displayName(models.Comment{UserName: &name, IsAnonymous: true}))
	assert.Equal(t, "anonymous", displayName(models.Comment{}))
}
