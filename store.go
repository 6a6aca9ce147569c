// Package aurahub implements the data layer of the Aura Hub multi-vendor
// marketplace: a small embedded document store that merges a fixed seed
// dataset with persisted collections, plus clients for the hub's external
// AI and backend-as-a-service collaborators.
package aurahub

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aura-hub/aurahub/domain"
	"github.com/aura-hub/aurahub/memstore"
)

// Persisted collection keys. They are kept identical to the browser-era
// storage keys so existing persisted data remains readable.
const (
	KeyVendors  = "aura_vendors"
	KeyProducts = "aura_products"
	KeyOrders   = "aura_orders"
)

// ErrSaveFailed marks a storage write failure. Every mutating accessor wraps
// backend write errors with it so callers can tell a dropped mutation from a
// validation problem.
var ErrSaveFailed = errors.New("persisting collection failed")

const (
	liveSalesVolume = 2540000

	starterPrice    = 1500
	starterCategory = "New Arrival"
	starterImageURL = "https://images.unsplash.com/photo-1585487000160-6ebcfceb0d03?q=80&w=800&auto=format&fit=crop"
)

// Store presents a merged, deduplicated view over the seed dataset and a
// mutable persisted dataset, per entity type. Reads never fail: corrupted or
// missing persisted collections degrade to the seed data alone. Mutations are
// serialized by an internal mutex and broadcast change notifications to
// subscribers (see Subscribe).
type Store struct {
	mu      sync.Mutex
	storage domain.CollectionStore
	config  *Config
	now     func() time.Time

	seedVendors  []domain.Vendor
	seedProducts []domain.Product
	seedOrders   []domain.Order
	stats        domain.EcosystemStats

	subMu  sync.Mutex
	subs   map[Topic]map[*Subscription]struct{}
	closed bool
}

// New creates a Store with the built-in seed data and applies the given
// options. Without a WithStorage option the store falls back to an in-memory
// backend, which makes it behave like a freshly cleared browser profile.
func New(options ...func(*Store) error) (*Store, error) {
	store := &Store{
		now:          time.Now,
		seedVendors:  SeedVendors(),
		seedProducts: SeedProducts(),
		seedOrders:   SeedOrders(),
		stats:        SeedStats(),
		subs:         make(map[Topic]map[*Subscription]struct{}),
	}

	if err := store.WithOptions(options...); err != nil {
		return nil, err
	}
	if store.storage == nil {
		store.storage = memstore.New()
	}
	return store, nil
}

// Storage exposes the backing CollectionStore.
func (store *Store) Storage() domain.CollectionStore {
	return store.storage
}

// Config returns the viper-backed configuration, or nil when the store was
// built without WithConfigDir.
func (store *Store) Config() *Config {
	return store.config
}

// loadCollection reads and decodes a persisted collection into out. Storage
// read failures and malformed content degrade to "no persisted records"; they
// are never surfaced to the caller.
func (store *Store) loadCollection(key string, out any) {
	raw, err := store.storage.Load(key)
	if err != nil || len(raw) == 0 {
		return
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return
	}
}

func (store *Store) saveCollection(key string, records any) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding collection %s : %w", key, err)
	}
	if err := store.storage.Save(key, raw); err != nil {
		return fmt.Errorf("saving collection %s : %w", key, errors.Join(ErrSaveFailed, err))
	}
	return nil
}

// mergeByID collapses a concatenated sequence by identity key: for each
// unique key only one record survives, the one whose position is last in the
// input, while the result keeps the first-occurrence order of the keys.
func mergeByID[T any, K comparable](records []T, key func(T) K) []T {
	merged := make([]T, 0, len(records))
	index := make(map[K]int, len(records))
	for _, record := range records {
		k := key(record)
		if at, ok := index[k]; ok {
			merged[at] = record
			continue
		}
		index[k] = len(merged)
		merged = append(merged, record)
	}
	return merged
}

// Vendors returns the merged vendor set. Seed records come first; a persisted
// record with a seed id overrides the seed record.
func (store *Store) Vendors() []domain.Vendor {
	persisted := []domain.Vendor{}
	store.loadCollection(KeyVendors, &persisted)

	combined := make([]domain.Vendor, 0, len(store.seedVendors)+len(persisted))
	combined = append(combined, store.seedVendors...)
	combined = append(combined, persisted...)
	return mergeByID(combined, func(v domain.Vendor) int { return v.ID })
}

// AddVendor persists a new vendor. If the id is already present in the merged
// set the call is a no-op. Otherwise the vendor is appended to the persisted
// collection and a starter product owned by the vendor is created through the
// add-product path, which also emits the product-change notification.
func (store *Store) AddVendor(vendor domain.Vendor) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, existing := range store.Vendors() {
		if existing.ID == vendor.ID {
			return nil
		}
	}

	persisted := []domain.Vendor{}
	store.loadCollection(KeyVendors, &persisted)
	persisted = append(persisted, vendor)
	if err := store.saveCollection(KeyVendors, persisted); err != nil {
		return err
	}

	return store.addProduct(StarterProduct(vendor, store.now()))
}

// StarterProduct synthesizes the placeholder product assigned to a newly
// added vendor.
func StarterProduct(vendor domain.Vendor, now time.Time) domain.Product {
	return domain.Product{
		ID:          int(now.UnixMilli()) + 999,
		VendorID:    vendor.ID,
		Name:        fmt.Sprintf("%s Starter Item", vendor.Name),
		Price:       starterPrice,
		Description: fmt.Sprintf("Signature item from the newly joined %s collection.", vendor.Name),
		ImageURL:    starterImageURL,
		Category:    starterCategory,
	}
}

// Products returns the merged product set. Seed records come first; a
// persisted record with a seed id overrides the seed record.
func (store *Store) Products() []domain.Product {
	persisted := []domain.Product{}
	store.loadCollection(KeyProducts, &persisted)

	combined := make([]domain.Product, 0, len(store.seedProducts)+len(persisted))
	combined = append(combined, store.seedProducts...)
	combined = append(combined, persisted...)
	return mergeByID(combined, func(p domain.Product) int { return p.ID })
}

// AddProduct prepends the product to the persisted collection. There is no
// id-collision check; a persisted duplicate overrides the seed copy on read.
func (store *Store) AddProduct(product domain.Product) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.addProduct(product)
}

func (store *Store) addProduct(product domain.Product) error {
	product.Normalize()

	persisted := []domain.Product{}
	store.loadCollection(KeyProducts, &persisted)
	persisted = append([]domain.Product{product}, persisted...)
	if err := store.saveCollection(KeyProducts, persisted); err != nil {
		return err
	}

	store.emit(TopicProducts)
	return nil
}

// DeleteProduct removes the matching id from the persisted collection only.
// Seed products can never be removed: the seed copy is re-introduced by the
// merge on every read.
func (store *Store) DeleteProduct(productID int) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	persisted := []domain.Product{}
	store.loadCollection(KeyProducts, &persisted)

	remaining := persisted[:0]
	for _, product := range persisted {
		if product.ID != productID {
			remaining = append(remaining, product)
		}
	}
	if err := store.saveCollection(KeyProducts, remaining); err != nil {
		return err
	}

	store.emit(TopicProducts)
	return nil
}

// Orders returns the merged order set. Persisted records come first, so on an
// id collision the seed record overrides the persisted one. This is the
// opposite precedence to vendors and products; callers relying on overrides
// must account for the asymmetry.
func (store *Store) Orders() []domain.Order {
	persisted := []domain.Order{}
	store.loadCollection(KeyOrders, &persisted)

	combined := make([]domain.Order, 0, len(persisted)+len(store.seedOrders))
	combined = append(combined, persisted...)
	combined = append(combined, store.seedOrders...)
	return mergeByID(combined, func(o domain.Order) string { return o.ID })
}

// AddOrder prepends the order to the persisted collection and emits the
// order-change notification.
func (store *Store) AddOrder(order domain.Order) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	persisted := []domain.Order{}
	store.loadCollection(KeyOrders, &persisted)
	persisted = append([]domain.Order{order}, persisted...)
	if err := store.saveCollection(KeyOrders, persisted); err != nil {
		return err
	}

	store.emit(TopicOrders)
	return nil
}

// OrderByID looks up an order in the merged set.
func (store *Store) OrderByID(orderID string) (domain.Order, bool) {
	for _, order := range store.Orders() {
		if order.ID == orderID {
			return order, true
		}
	}
	return domain.Order{}, false
}

// VendorBySlug looks up a vendor by its storefront slug.
func (store *Store) VendorBySlug(slug string) (domain.Vendor, bool) {
	for _, vendor := range store.Vendors() {
		if vendor.Slug == slug {
			return vendor, true
		}
	}
	return domain.Vendor{}, false
}

// ProductsByVendor filters the merged products by owning vendor id, in the
// store's merge order.
func (store *Store) ProductsByVendor(vendorID int) []domain.Product {
	matched := []domain.Product{}
	for _, product := range store.Products() {
		if product.VendorID == vendorID {
			matched = append(matched, product)
		}
	}
	return matched
}

// EcosystemStats returns the static aggregate record.
func (store *Store) EcosystemStats() domain.EcosystemStats {
	return store.stats
}

// LiveSales returns the current live sales figure shown on the hub landing page.
func (store *Store) LiveSales() int {
	return liveSalesVolume
}
