package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"darakbang/config"
	"darakbang/db"
	"darakbang/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "Operator email (required)")
	password := flag.String("password", "", "Operator password (required)")
	name := flag.String("name", "", "Operator name (required)")
	role := flag.String("role", "admin", "Operator role: 'admin' or 'moderator'")
	configPath := flag.String("config", "config/config.yml", "Path to config file")
	flag.Parse()

	if *email == "" || *password == "" || *name == "" {
		fmt.Println("Error: email, password, and name are required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *role != "admin" && *role != "moderator" {
		fmt.Println("Error: role must be 'admin' or 'moderator'")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.MongoClient.Disconnect(context.Background())

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var existing models.Admin
	err = db.GetCollection("admins").FindOne(dbCtx, bson.M{"email": *email}).Decode(&existing)
	if err == nil {
		log.Fatalf("Operator with email %s already exists", *email)
	}
	if err != mongo.ErrNoDocuments {
		log.Fatalf("Database error: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	admin := models.Admin{
		Email:     *email,
		Password:  string(hashed),
		Role:      *role,
		Name:      *name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := db.GetCollection("admins").InsertOne(dbCtx, admin)
	if err != nil {
		log.Fatalf("Failed to create operator: %v", err)
	}

	fmt.Printf("Operator created successfully\n")
	fmt.Printf("  ID: %v\n", result.InsertedID)
	fmt.Printf("  Email: %s\n", *email)
	fmt.Printf("  Name: %s\n", *name)
	fmt.Printf("  Role: %s\n", *role)
}
