package utils

import (
	"darakbang/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrganizeComments flattens a post's comments into display order: each
// top-level comment is followed by its replies, and replies whose parent was
// deleted are appended at the end. Relative input order is preserved within
// every group, so the result is a permutation of the input.
func OrganizeComments(comments []models.Comment) []models.Comment {
	var topLevel, replies []models.Comment
	for _, c := range comments {
		if c.IsReply() {
			replies = append(replies, c)
		} else {
			topLevel = append(topLevel, c)
		}
	}

	organized := make([]models.Comment, 0, len(comments))
	matched := make(map[primitive.ObjectID]bool, len(replies))
	for _, parent := range topLevel {
		organized = append(organized, parent)
		for _, r := range replies {
			if *r.ParentCommentID == parent.ID {
				organized = append(organized, r)
				matched[r.ID] = true
			}
		}
	}

	// Orphaned replies keep their input order after all matched groups
	for _, r := range replies {
		if !matched[r.ID] {
			organized = append(organized, r)
		}
	}
	return organized
}

// ResolveReplyParent returns the effective parent for a reply to target:
// target's own parent when target is already a reply, otherwise target
// itself. This caps the thread depth at 1 no matter how often "reply to a
// reply" is invoked.
func ResolveReplyParent(target models.Comment) primitive.ObjectID {
	if target.IsReply() {
		return *target.ParentCommentID
	}
	return target.ID
}
