package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"storefront/libs"
	"storefront/utils"
)

const (
	productCachePrefix = "products:"
	listCachePrefix    = productCachePrefix + "list:"
	facetCachePrefix   = productCachePrefix + "facets:"
)

// PublishTimeout caps how long a request waits on the event publisher after
// its database work is committed.
const PublishTimeout = 2 * time.Second

// CatalogNotifier drops cached listings and announces a catalog write.
// Every admin catalog service shares one.
type CatalogNotifier struct {
	cache          libs.Cache
	events         libs.Publisher
	log            *zap.Logger
	publishTimeout time.Duration
}

func NewCatalogNotifier(cache libs.Cache, events libs.Publisher, log *zap.Logger) CatalogNotifier {
	return CatalogNotifier{cache: cache, events: events, log: log, publishTimeout: PublishTimeout}
}

// publish is best effort: it is detached from the caller's cancellation and
// gives up after publishTimeout.
func (n CatalogNotifier) publish(ctx context.Context, ev libs.Event) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.publishTimeout)
	defer cancel()
	return n.events.Publish(ctx, ev)
}

func (n CatalogNotifier) changed(ctx context.Context, entity string, id int64, action string) {
	n.cache.InvalidatePrefix(ctx, productCachePrefix)

	ev := libs.Event{
		Type:    libs.EventCatalogChanged,
		Key:     entity,
		Payload: libs.CatalogChange{Entity: entity, ID: id, Action: action},
	}
	if err := n.publish(ctx, ev); err != nil {
		n.log.Warn("failed to publish catalog event",
			zap.String("entity", entity), zap.Int64("id", id), zap.String("action", action), zap.Error(err))
	}
}

// slugOrName returns slug normalised, or one derived from name when empty.
func slugOrName(slug, name string) string {
	if s := utils.Slugify(slug); s != "" {
		return s
	}
	return utils.Slugify(name)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
