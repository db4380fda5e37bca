package controllers

import (
	"context"
	"net/http"
	"time"

	"darakbang/config"
	"darakbang/db"
	"darakbang/middlewares"
	"darakbang/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// AdminLoginRequest represents the login request
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin authenticates an operator and issues a session token. Operators
// are provisioned with cmd/addadmin, there is no self-service signup.
func AdminLogin(cfg *config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var request AdminLoginRequest
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
			return
		}

		dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		err := db.GetCollection("admins").FindOne(dbCtx, bson.M{"email": request.Email}).Decode(&admin)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
				return
			}
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Database error", "message": err.Error()})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(request.Password)); err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		token, err := middlewares.GenerateAdminJWT(admin.Email, cfg.JWT.Secret, cfg.JWT.Expiry)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token", "message": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"message":     "Admin login successful",
			"accessToken": token,
			"admin": gin.H{
				"id":    admin.ID.Hex(),
				"email": admin.Email,
				"name":  admin.Name,
				"role":  admin.Role,
			},
		})
	}
}

// GetAdminActionLogs returns the audit trail, newest first.
func GetAdminActionLogs(ctx *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(200)
	cursor, err := db.GetCollection("admin_action_logs").Find(dbCtx, bson.M{}, opts)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logs", "message": err.Error()})
		return
	}
	defer cursor.Close(dbCtx)

	var logs []models.AdminActionLog
	if err := cursor.All(dbCtx, &logs); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode logs", "message": err.Error()})
		return
	}

	total, _ := db.GetCollection("admin_action_logs").CountDocuments(dbCtx, bson.M{})
	ctx.JSON(http.StatusOK, gin.H{"logs": logs, "total": total})
}
