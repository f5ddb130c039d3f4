// Package querycache mantém o resultado das consultas de leitura indexado por chave
// composta (recurso + parâmetros). Chamadas concorrentes com a mesma chave
// compartilham uma única requisição em andamento.
package querycache

import (
	"context"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Key é a chave composta de uma consulta. O primeiro elemento é a tag do recurso.
type Key []string

func (k Key) Tag() string {
	if len(k) == 0 {
		return ""
	}
	return k[0]
}

func (k Key) String() string {
	b, err := json.Marshal([]string(k))
	if err != nil {
		// []string sempre serializa
		panic(err)
	}
	return string(b)
}

// Recorder recebe os eventos do cache para métricas
type Recorder interface {
	RecordCacheHit(tag string)
	RecordCacheMiss(tag string)
	RecordCacheCoalesced(tag string)
}

type Options struct {
	// StaleTime é por quanto tempo um resultado é servido sem nova consulta.
	// Zero faz toda chamada consultar de novo (ainda deduplicando as concorrentes).
	StaleTime time.Duration
	// GCTime é o tempo sem acesso após o qual Sweep remove a entrada. Zero desliga a remoção.
	GCTime   time.Duration
	Recorder Recorder
	Now      func() time.Time
}

type entry struct {
	key        Key
	data       any
	hasData    bool
	err        error
	updatedAt  time.Time
	lastAccess time.Time
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	// inflight guarda a chave das consultas em andamento
	inflight map[string]Key
	// generations avança a cada invalidação do recurso; resultados iniciados
	// numa geração anterior não são gravados
	generations map[string]uint64
	group       singleflight.Group
	opts        Options
}

func New(opts Options) *Cache {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Cache{
		entries:     make(map[string]*entry),
		inflight:    make(map[string]Key),
		generations: make(map[string]uint64),
		opts:        opts,
	}
}

// Fetch devolve o resultado da chave, consultando via fetch quando não houver
// dado fresco. Erros nunca escapam: ficam no State.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) State[T] {
	hash := key.String()
	tag := key.Tag()

	if state, ok := lookupFresh[T](c, hash); ok {
		c.recordHit(tag)
		return state
	}

	c.recordMiss(tag)

	// A consulta não herda o cancelamento de quem a iniciou, pois outros
	// chamadores podem estar aguardando o mesmo resultado.
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(hash, func() (any, error) {
		generation := c.begin(hash, key)
		data, err := fetch(detached)
		c.store(hash, key, generation, data, err)
		return data, err
	})

	select {
	case <-ctx.Done():
		logrus.WithField("key", hash).Debug("querycache: chamador desistiu antes da resposta")
		return State[T]{Status: StatusError, Err: ctx.Err()}

	case res := <-ch:
		if res.Shared {
			c.recordCoalesced(tag)
		}

		if res.Err != nil {
			return errorState[T](c, hash, res.Err)
		}

		data, _ := res.Val.(T)
		return State[T]{
			Status:    StatusSuccess,
			Data:      data,
			UpdatedAt: c.updatedAt(hash),
		}
	}
}

func lookupFresh[T any](c *Cache, hash string) (State[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[hash]
	if !ok {
		return State[T]{}, false
	}

	now := c.opts.Now()
	e.lastAccess = now

	if e.err != nil || !e.hasData || now.Sub(e.updatedAt) >= c.opts.StaleTime {
		return State[T]{}, false
	}

	data, ok := e.data.(T)
	if !ok {
		return State[T]{}, false
	}

	return State[T]{Status: StatusSuccess, Data: data, UpdatedAt: e.updatedAt}, true
}

func (c *Cache) begin(hash string, key Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inflight[hash] = key
	return c.generations[key.Tag()]
}

func (c *Cache) store(hash string, key Key, generation uint64, data any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.inflight, hash)

	if c.generations[key.Tag()] != generation {
		logrus.WithField("key", hash).Debug("querycache: resultado descartado, recurso invalidado durante a consulta")
		return
	}

	now := c.opts.Now()

	e, ok := c.entries[hash]
	if !ok {
		e = &entry{key: key}
		c.entries[hash] = e
	}

	e.lastAccess = now
	e.err = err
	if err != nil {
		// Mantém o último dado válido
		return
	}

	e.data = data
	e.hasData = true
	e.updatedAt = now
}

// errorState preserva o último dado válido da chave junto com o erro
func errorState[T any](c *Cache, hash string, err error) State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := State[T]{Status: StatusError, Err: err}
	if e, ok := c.entries[hash]; ok && e.hasData {
		if data, ok := e.data.(T); ok {
			state.Data = data
			state.UpdatedAt = e.updatedAt
		}
	}
	return state
}

func (c *Cache) updatedAt(hash string) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[hash]; ok {
		return e.updatedAt
	}
	return time.Time{}
}

// Invalidate remove a entrada da chave. Uma consulta em andamento para o mesmo
// recurso não grava o resultado e a próxima chamada consulta de novo.
func (c *Cache) Invalidate(key Key) bool {
	hash := key.String()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.generations[key.Tag()]++
	if _, ok := c.inflight[hash]; ok {
		c.group.Forget(hash)
	}

	_, existed := c.entries[hash]
	delete(c.entries, hash)
	return existed
}

// InvalidateTag remove todas as entradas do recurso
func (c *Cache) InvalidateTag(tag string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generations[tag]++
	for hash, key := range c.inflight {
		if key.Tag() == tag {
			c.group.Forget(hash)
		}
	}

	removed := 0
	for hash, e := range c.entries {
		if e.key.Tag() == tag {
			delete(c.entries, hash)
			removed++
		}
	}
	return removed
}

// Sweep remove as entradas sem acesso há mais de GCTime
func (c *Cache) Sweep() int {
	if c.opts.GCTime <= 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.opts.Now()
	removed := 0
	for hash, e := range c.entries {
		if now.Sub(e.lastAccess) >= c.opts.GCTime {
			delete(c.entries, hash)
			removed++
		}
	}
	return removed
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *Cache) recordHit(tag string) {
	if c.opts.Recorder != nil {
		c.opts.Recorder.RecordCacheHit(tag)
	}
}

func (c *Cache) recordMiss(tag string) {
	if c.opts.Recorder != nil {
		c.opts.Recorder.RecordCacheMiss(tag)
	}
}

func (c *Cache) recordCoalesced(tag string) {
	if c.opts.Recorder != nil {
		c.opts.Recorder.RecordCacheCoalesced(tag)
	}
}
