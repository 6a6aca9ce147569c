package aurahub

import "sync"

// Topic names a change-notification signal. Signals carry no payload;
// subscribers re-fetch via the list accessors to learn what changed.
type Topic string

const (
	// TopicProducts fires after add and delete product operations, including
	// the starter product created by AddVendor.
	TopicProducts Topic = "productUpdated"
	// TopicOrders fires after add order operations.
	TopicOrders Topic = "orderUpdated"
)

// Subscription is a registered listener on one topic. Receive on C; call
// Close to unregister. Delivery is fire-and-forget: a signal emitted while C
// is full is dropped, and signals emitted before Subscribe are never seen.
type Subscription struct {
	C <-chan struct{}

	topic Topic
	ch    chan struct{}
	store *Store
	once  sync.Once
}

// Subscribe registers a listener for the given topic.
func (store *Store) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{topic: topic, ch: make(chan struct{}, 1), store: store}
	sub.C = sub.ch

	store.subMu.Lock()
	defer store.subMu.Unlock()

	if store.closed {
		sub.once.Do(func() { close(sub.ch) })
		return sub
	}
	if store.subs[topic] == nil {
		store.subs[topic] = make(map[*Subscription]struct{})
	}
	store.subs[topic][sub] = struct{}{}
	return sub
}

// Close unregisters the subscription and closes its channel. It is safe to
// call more than once.
func (sub *Subscription) Close() {
	sub.once.Do(func() {
		sub.store.subMu.Lock()
		delete(sub.store.subs[sub.topic], sub)
		sub.store.subMu.Unlock()
		close(sub.ch)
	})
}

// emit broadcasts a signal to every subscriber of the topic without blocking.
func (store *Store) emit(topic Topic) {
	store.subMu.Lock()
	defer store.subMu.Unlock()

	for sub := range store.subs[topic] {
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}

// Close releases all subscriptions. The store must not be used afterwards.
func (store *Store) Close() error {
	store.subMu.Lock()
	if store.closed {
		store.subMu.Unlock()
		return nil
	}
	store.closed = true
	var all []*Subscription
	for _, set := range store.subs {
		for sub := range set {
			all = append(all, sub)
		}
	}
	store.subMu.Unlock()

	for _, sub := range all {
		sub.Close()
	}
	return nil
}
