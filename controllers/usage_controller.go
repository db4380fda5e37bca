package controllers

import (
	"context"
	"log"
	"net/http"
	"sort"
	"time"

	"darakbang/db"
	"darakbang/models"
	"darakbang/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetUsage serves the feature-usage screen: compatibility and advice runs
// merged per user, most recently active first. Records whose user no longer
// exists are dropped rather than shown as ghost rows.
func GetUsage(ctx *gin.Context) {
	params := utils.ParseListParams(ctx)

	dbCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	users, err := loadUserIndex(dbCtx)
	if err != nil {
		log.Printf("Failed to fetch users for usage: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	compat, err := loadUsageRecords(dbCtx, "compatibility_history", models.UsageCompatibility)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch compatibility history"})
		return
	}
	advice, err := loadUsageRecords(dbCtx, "advice_history", models.UsageAdvice)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch advice history"})
		return
	}

	todayStart := utils.DayStart(time.Now())
	var todayCompat, todayAdvice int

	merged := make(map[primitive.ObjectID]*models.UserUsage)
	usageFor := func(userID primitive.ObjectID) *models.UserUsage {
		if u, ok := merged[userID]; ok {
			return u
		}
		owner, ok := users[userID]
		if !ok {
			return nil
		}
		email := ""
		if owner.Email != nil {
			email = *owner.Email
		}
		u := &models.UserUsage{
			UserID:   userID.Hex(),
			UserName: owner.DisplayName(),
			Email:    email,
		}
		merged[userID] = u
		return u
	}

	for _, rec := range compat {
		if !rec.CreatedAt.Before(todayStart) {
			todayCompat++
		}
		u := usageFor(rec.UserID)
		if u == nil {
			continue
		}
		u.Compatibility = append(u.Compatibility, rec)
		u.CompatibilityCount++
		if rec.CreatedAt.After(u.LastUsed) {
			u.LastUsed = rec.CreatedAt
		}
	}
	for _, rec := range advice {
		if !rec.CreatedAt.Before(todayStart) {
			todayAdvice++
		}
		u := usageFor(rec.UserID)
		if u == nil {
			continue
		}
		u.Advice = append(u.Advice, rec)
		u.AdviceCount++
		if rec.CreatedAt.After(u.LastUsed) {
			u.LastUsed = rec.CreatedAt
		}
	}

	rows := make([]models.UserUsage, 0, len(merged))
	for _, u := range merged {
		if !utils.MatchesSearch(params.Search, &u.UserName, &u.Email) {
			continue
		}
		rows = append(rows, *u)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].LastUsed.After(rows[j].LastUsed)
	})

	page := utils.Paginate(rows, params.Page)
	ctx.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"totalCompatibility": len(compat),
			"totalAdvice":        len(advice),
			"todayCompatibility": todayCompat,
			"todayAdvice":        todayAdvice,
		},
		"usage": page,
	})
}

func loadUserIndex(ctx context.Context) (map[primitive.ObjectID]models.User, error) {
	cursor, err := db.GetCollection("users").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	index := make(map[primitive.ObjectID]models.User, len(users))
	for _, u := range users {
		index[u.ID] = u
	}
	return index, nil
}

func loadUsageRecords(ctx context.Context, collection, recordType string) ([]models.UsageRecord, error) {
	cursor, err := db.GetCollection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.UsageRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Type = recordType
	}
	return records, nil
}
