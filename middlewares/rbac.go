package middlewares

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"darakbang/config"
	"darakbang/db"
	"darakbang/models"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	mongodbadapter "github.com/casbin/mongodb-adapter/v3"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var enforcer *casbin.Enforcer

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Both roles may moderate content; only full admins may destroy posts,
// notices, and user accounts or push to the whole member base.
var defaultPolicies = [][]string{
	{"admin", "post", "delete"},
	{"admin", "comment", "delete"},
	{"admin", "report", "delete"},
	{"admin", "notice", "delete"},
	{"admin", "user", "ban"},
	{"admin", "push", "send"},
	{"moderator", "comment", "delete"},
	{"moderator", "report", "delete"},
}

// InitCasbin initializes the Casbin enforcer backed by the MongoDB adapter
// (policies live in the casbin_rule collection).
func InitCasbin(cfg *config.Config) error {
	adapter, err := mongodbadapter.NewAdapter(cfg.Database.URI)
	if err != nil {
		return fmt.Errorf("failed to create Casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return fmt.Errorf("failed to create Casbin model: %w", err)
	}

	enforcer, err = casbin.NewEnforcer(m, adapter)
	if err != nil {
		return fmt.Errorf("failed to create Casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to load policy: %w", err)
	}

	ensureDefaultPolicies()
	log.Println("Casbin RBAC initialized")
	return nil
}

// ensureDefaultPolicies seeds the baseline policies, skipping existing ones.
func ensureDefaultPolicies() {
	for _, p := range defaultPolicies {
		exists, _ := enforcer.HasPolicy(p[0], p[1], p[2])
		if !exists {
			enforcer.AddPolicy(p[0], p[1], p[2])
		}
	}
	if err := enforcer.SavePolicy(); err != nil {
		log.Printf("Warning: failed to save policies: %v", err)
	}
}

// RBACMiddleware checks whether the operator's role permits the action.
func RBACMiddleware(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminRole, exists := c.Get("adminRole")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role not found"})
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(adminRole.(string), resource, action)
		if err != nil {
			log.Printf("Casbin enforce error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Permission check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// LogAdminAction records a destructive console action for audit purposes.
func LogAdminAction(c *gin.Context, action, resourceType string, resourceID primitive.ObjectID, details map[string]interface{}) error {
	adminID, exists := c.Get("adminID")
	if !exists {
		return fmt.Errorf("adminID not found in context")
	}
	adminEmail, exists := c.Get("adminEmail")
	if !exists {
		return fmt.Errorf("adminEmail not found in context")
	}

	logEntry := models.AdminActionLog{
		ID:           primitive.NewObjectID(),
		AdminID:      adminID.(primitive.ObjectID),
		AdminEmail:   adminEmail.(string),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.GetHeader("User-Agent"),
		Timestamp:    time.Now(),
		Details:      details,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.GetCollection("admin_action_logs").InsertOne(ctx, logEntry)
	if err != nil {
		log.Printf("Failed to write admin action log: %v", err)
	}
	return err
}
