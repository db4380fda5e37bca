package utils

import (
	"testing"

	"darakbang/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newComment(text string) models.Comment {
	return models.Comment{ID: primitive.NewObjectID(), Text: text}
}

func newReply(text string, parent primitive.ObjectID) models.Comment {
	return models.Comment{ID: primitive.NewObjectID(), Text: text, ParentCommentID: &parent}
}

func texts(comments []models.Comment) []string {
	out := make([]string, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.Text)
	}
	return out
}

func TestOrganizeCommentsGroupsRepliesUnderParents(t *testing.T) {
	c1 := newComment("first")
	c2 := newComment("second")
	r1 := newReply("reply to first", c1.ID)
	r2 := newReply("another reply to first", c1.ID)
	r3 := newReply("reply to second", c2.ID)

	organized := OrganizeComments([]models.Comment{c1, r3, c2, r1, r2})

	assert.Equal(t,
		[]string{"first", "reply to first", "another reply to first", "second", "reply to second"},
		texts(organized))
}

func TestOrganizeCommentsIsPermutation(t *testing.T) {
	c1 := newComment("a")
	c2 := newComment("b")
	input := []models.Comment{newReply("r", c1.ID), c2, c1, newReply("orphan", primitive.NewObjectID())}

	organized := OrganizeComments(input)

	assert.Len(t, organized, len(input))
	seen := make(map[primitive.ObjectID]bool)
	for _, c := range organized {
		assert.False(t, seen[c.ID], "comment %s appears twice", c.Text)
		seen[c.ID] = true
	}
}

func TestOrganizeCommentsOrphansLast(t *testing.T) {
	c1 := newComment("parent")
	gone := primitive.NewObjectID()
	o1 := newReply("orphan one", gone)
	o2 := newReply("orphan two", gone)

	organized := OrganizeComments([]models.Comment{o1, c1, o2})

	assert.Equal(t, []string{"parent", "orphan one", "orphan two"}, texts(organized))
}

func TestOrganizeCommentsAllOrphans(t *testing.T) {
	gone := primitive.NewObjectID()
	o1 := newReply("one", gone)
	o2 := newReply("two", gone)

	organized := OrganizeComments([]models.Comment{o1, o2})

	assert.Equal(t, []string{"one", "two"}, texts(organized))
}

func TestOrganizeCommentsEmpty(t *testing.T) {
	assert.Empty(t, OrganizeComments(nil))
	assert.Empty(t, OrganizeComments([]models.Comment{}))
}

func TestResolveReplyParent(t *testing.T) {
	top := newComment("top")
	assert.Equal(t, top.ID, ResolveReplyParent(top))

	reply := newReply("reply", top.ID)
	// replying to a reply reparents onto the top-level comment
	assert.Equal(t, top.ID, ResolveReplyParent(reply))
}
