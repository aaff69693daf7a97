package db

import (
	"context"
	"os"
	"testing"
	"time"

	"blog-summariser/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestClient_InvalidURIFailsAtCallTime(t *testing.T) {
	client := NewClient("not-a-mongo-uri", "blog_summariser_test", "blogs")

	assert.Error(t, client.Connect(context.Background()))

	session, err := client.OpenSession(context.Background())
	assert.Error(t, err)
	assert.Nil(t, session)
	assert.NoError(t, client.Close(context.Background()))
}

func TestIntegration_SessionSaveRaw(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx := context.Background()
	client := NewClient(uri, "blog_summariser_test", "blogs_test")
	require.NoError(t, client.Connect(ctx))
	defer client.Close(ctx)

	session, err := client.OpenSession(ctx)
	require.NoError(t, err)
	defer session.Close(ctx)

	raw := &domain.RawText{
		URL:       "https://example.com/integration-" + time.Now().Format(time.RFC3339Nano),
		Text:      "integration test text",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, session.SaveRaw(ctx, raw))

	var stored domain.RawText
	err = client.collection.FindOne(ctx, bson.M{"url": raw.URL}).Decode(&stored)
	require.NoError(t, err)
	assert.Equal(t, raw.Text, stored.Text)
}
