package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	TripsCollection         *mongo.Collection
	AccompanyCollection     *mongo.Collection
	ApplicationsCollection  *mongo.Collection
	AccompanyCommentsColl   *mongo.Collection
	PostsCollection         *mongo.Collection
	CommentsCollection      *mongo.Collection
	FollowingsCollection    *mongo.Collection
	NotificationsCollection *mongo.Collection
	RegionChatCollection    *mongo.Collection
	ChatsCollection         *mongo.Collection
	MessagesCollection      *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("tripmate")
	UserCollection = database.Collection("members")
	TripsCollection = database.Collection("trips")
	AccompanyCollection = database.Collection("accompanyposts")
	ApplicationsCollection = database.Collection("accompanyapplications")
	AccompanyCommentsColl = database.Collection("accompanycomments")
	PostsCollection = database.Collection("posts")
	CommentsCollection = database.Collection("comments")
	FollowingsCollection = database.Collection("followings")
	NotificationsCollection = database.Collection("notifications")
	RegionChatCollection = database.Collection("regionmessages")
	ChatsCollection = database.Collection("chats")
	MessagesCollection = database.Collection("messages")
}
