package db

import (
	"context"
	"fmt"

	"blog-summariser/pkg/domain"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client wraps the MongoDB client and the collection holding raw texts
type Client struct {
	mongoClient *mongo.Client
	collection  *mongo.Collection
	initErr     error
}

// NewClient creates a new database client. Connection problems are not
// reported here; they surface from Connect and from every session opened later.
func NewClient(connectionString, databaseName, collectionName string) *Client {
	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		return &Client{initErr: fmt.Errorf("mongo client not initialized: %w", err)}
	}

	return &Client{
		mongoClient: mongoClient,
		collection:  mongoClient.Database(databaseName).Collection(collectionName),
	}
}

// Name identifies the store in user-facing messages
func (c *Client) Name() string {
	return "MongoDB"
}

// Connect verifies connectivity to MongoDB
func (c *Client) Connect(ctx context.Context) error {
	if c.mongoClient == nil {
		return c.initErr
	}
	return c.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (c *Client) Close(ctx context.Context) error {
	if c.mongoClient == nil {
		return nil
	}
	return c.mongoClient.Disconnect(ctx)
}

// Session is a per-request MongoDB session. It must be closed by the caller.
type Session struct {
	session    mongo.Session
	collection *mongo.Collection
}

// OpenSession starts a fresh session for one request.
func (c *Client) OpenSession(ctx context.Context) (RawSession, error) {
	if c.mongoClient == nil {
		return nil, c.initErr
	}

	sess, err := c.mongoClient.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start mongo session: %w", err)
	}

	return &Session{session: sess, collection: c.collection}, nil
}

// SaveRaw inserts the raw text document within the session
func (s *Session) SaveRaw(ctx context.Context, raw *domain.RawText) error {
	sc := mongo.NewSessionContext(ctx, s.session)
	if _, err := s.collection.InsertOne(sc, raw); err != nil {
		return fmt.Errorf("insert raw text: %w", err)
	}
	return nil
}

// Close ends the session and returns it to the pool
func (s *Session) Close(ctx context.Context) error {
	s.session.EndSession(ctx)
	return nil
}
