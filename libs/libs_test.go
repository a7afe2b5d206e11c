package libs

import (
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/models"
)

func TestValidateImage(t *testing.T) {
	ok := &multipart.FileHeader{Filename: "shirt.PNG", Size: 1024}
	assert.NoError(t, ValidateImage(ok, 2048))

	big := &multipart.FileHeader{Filename: "shirt.png", Size: 4096}
	assert.ErrorIs(t, ValidateImage(big, 2048), ErrImageTooLarge)

	exe := &multipart.FileHeader{Filename: "shirt.exe", Size: 10}
	assert.ErrorIs(t, ValidateImage(exe, 2048), ErrImageType)
}

func TestLocalImageStore(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalImageStore(dir, "/uploads/")
	store.now = func() time.Time { return time.Unix(0, 42) }

	url, publicID, err := store.Upload(context.Background(), strings.NewReader("png-bytes"), "My Shirt.png", "products")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/products/42.png", url)
	assert.Equal(t, "products/42.png", publicID)

	data, err := os.ReadFile(filepath.Join(dir, "products", "42.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(context.Background(), publicID))
	_, err = os.Stat(filepath.Join(dir, "products", "42.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(context.Background(), "products/missing.png"))
}

func TestNewImageStoreFallsBackToLocal(t *testing.T) {
	store, err := NewImageStore("", "", "", "", t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LocalImageStore{}, store)
}

func TestRenderOrderConfirmation(t *testing.T) {
	order := &models.Order{
		OrderNumber: "ORD-20260101-ABCDEF12",
		FullName:    "Ada <Lovelace>",
		Currency:    "USD",
		Subtotal:    2500,
		ShippingFee: 500,
		Total:       3000,
		Items: []models.OrderItem{
			{ProductName: "Tee", VariantName: "Red / M", Quantity: 2, LineTotal: 2500},
		},
	}

	body, err := RenderOrderConfirmation(order)
	require.NoError(t, err)

	assert.Contains(t, body, "ORD-20260101-ABCDEF12")
	assert.Contains(t, body, "Tee (Red / M)")
	assert.Contains(t, body, "USD 30.00")
	assert.Contains(t, body, "Ada &lt;Lovelace&gt;")
}

func TestKafkaTopicRouting(t *testing.T) {
	p := &KafkaPublisher{ordersTopic: "orders", catalogTopic: "catalog"}
	assert.Equal(t, "orders", p.topicFor(EventOrderPlaced))
	assert.Equal(t, "orders", p.topicFor(EventOrderStatusChanged))
	assert.Equal(t, "catalog", p.topicFor(EventCatalogChanged))
}

func TestKafkaPublishDoesNotWaitForBrokers(t *testing.T) {
	p, err := NewKafkaPublisher([]string{"127.0.0.1:1"}, "orders", "catalog", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(p.cl.Close)

	ctx, cancel := context.WithCancel(context.Background())
	start := time.Now()
	err = p.Publish(ctx, Event{Type: EventOrderPlaced, Key: "ORD-1", Payload: map[string]int{"total": 100}})
	cancel()

	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRedisCacheWithoutClient(t *testing.T) {
	c := NewRedisCache(nil, time.Minute, zap.NewNop())
	ctx := context.Background()

	c.Set(ctx, "k", map[string]int{"a": 1})
	var out map[string]int
	assert.False(t, c.Get(ctx, "k", &out))
	c.InvalidatePrefix(ctx, "k")
}
