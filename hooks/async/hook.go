// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/heavyselect"
//	"github.com/unkn0wn-root/heavyselect/codec"
//	"github.com/unkn0wn-root/heavyselect/hooks/async"
//	"github.com/unkn0wn-root/heavyselect/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    SelfHealEvery: 10, // sample logs: ~every 10th self-heal
//	    LoadMissEvery: 1,  // log every expired-key miss
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	cache, _ := heavyselect.New(heavyselect.Options{
//	    Namespace: "myapp",
//	    Provider:  provider,
//	    Codec:     codec.JSON[heavyselect.Config]{},
//	    Hooks:     hooks, // or `raw` if you don’t want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/heavyselect"
)

type Hooks struct {
	inner heavyselect.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ heavyselect.Hooks = (*Hooks)(nil)

func New(inner heavyselect.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) ConfigStored(fieldID string) {
	h.try(func() { h.inner.ConfigStored(fieldID) })
}

func (h *Hooks) ConfigEncodeError(fieldID string, err error) {
	h.try(func() { h.inner.ConfigEncodeError(fieldID, err) })
}

func (h *Hooks) LoadMiss(key string) {
	h.try(func() { h.inner.LoadMiss(key) })
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	h.try(func() { h.inner.SelfHeal(storageKey, reason) })
}

func (h *Hooks) ProviderSetRejected(storageKey string) {
	h.try(func() { h.inner.ProviderSetRejected(storageKey) })
}

func (h *Hooks) ProviderError(op string, err error) {
	h.try(func() { h.inner.ProviderError(op, err) })
}
