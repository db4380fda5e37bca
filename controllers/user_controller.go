package controllers

import (
	"context"
	"log"
	"net/http"
	"sort"
	"time"

	"darakbang/db"
	"darakbang/middlewares"
	"darakbang/models"
	"darakbang/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetUsers lists app users newest-first with nickname/email search. Sorting
// happens in memory because legacy records can miss createdAt entirely; those
// sink to the end instead of dropping out of an indexed sort.
func GetUsers(ctx *gin.Context) {
	params := utils.ParseListParams(ctx)

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.GetCollection("users").Find(dbCtx, bson.M{})
	if err != nil {
		log.Printf("Failed to fetch users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	defer cursor.Close(dbCtx)

	var users []models.User
	if err := cursor.All(dbCtx, &users); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}

	sortUsersByCreatedAtDesc(users)

	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		if !utils.MatchesSearch(params.Search, u.Nickname, u.Email) {
			continue
		}
		filtered = append(filtered, u)
	}

	ctx.JSON(http.StatusOK, utils.Paginate(filtered, params.Page))
}

func sortUsersByCreatedAtDesc(users []models.User) {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
}

// ToggleUserBan bans or unbans an app user. Banning stamps bannedAt; lifting
// the ban clears it.
func ToggleUserBan(ctx *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := db.GetCollection("users").FindOne(dbCtx, bson.M{"_id": userID}).Decode(&user); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	banned := !user.IsBanned
	update := bson.M{"isBanned": banned}
	if banned {
		update["bannedAt"] = time.Now()
	} else {
		update["bannedAt"] = nil
	}

	if _, err := db.GetCollection("users").UpdateOne(dbCtx,
		bson.M{"_id": userID},
		bson.M{"$set": update},
	); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	action := "ban_user"
	if !banned {
		action = "unban_user"
	}
	middlewares.LogAdminAction(ctx, action, "user", userID, nil)

	ctx.JSON(http.StatusOK, gin.H{"message": "User updated", "isBanned": banned})
}
