// Package cache holds large objects that are expensive to build, such as
// lexicons, so that games sharing a configuration share one copy.
package cache

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/hazards/config"
	"github.com/domino14/hazards/lexicon"
)

type LoadFunc[T any] func(cfg *config.Config, key string) (T, error)

// Cache loads each key at most once. Failed loads are not remembered.
type Cache[T any] struct {
	sync.Mutex
	objects  map[string]T
	loadFunc LoadFunc[T]
}

func New[T any](loadFunc LoadFunc[T]) *Cache[T] {
	return &Cache[T]{objects: make(map[string]T), loadFunc: loadFunc}
}

func (c *Cache[T]) Get(cfg *config.Config, key string) (T, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting-obj-from-cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading-into-cache")
	obj, err := c.loadFunc(cfg, key)
	if err != nil {
		return obj, err
	}
	c.objects[key] = obj
	return obj, nil
}

func (c *Cache[T]) Len() int {
	c.Lock()
	defer c.Unlock()
	return len(c.objects)
}

// Evict drops a key so the next Get reloads it.
func (c *Cache[T]) Evict(key string) {
	c.Lock()
	defer c.Unlock()
	delete(c.objects, key)
}

// LexiconKey names the lexicon a configuration asks for.
func LexiconKey(cfg *config.Config) string {
	words := cfg.GetString(config.ConfigLexiconFile)
	if words == "" {
		words = lexicon.DefaultName
	}
	return fmt.Sprintf("%s|%s|%d", words, cfg.GetString(config.ConfigBlocklistFile),
		cfg.GetInt(config.ConfigBoardSize))
}

// LoadLexicon builds the lexicon for cfg. The key is ignored beyond
// identifying the entry; everything comes from cfg.
func LoadLexicon(cfg *config.Config, key string) (*lexicon.Lexicon, error) {
	return lexicon.Load(cfg.GetString(config.ConfigLexiconFile),
		cfg.GetString(config.ConfigBlocklistFile), cfg.GetInt(config.ConfigBoardSize))
}

// NewLexiconCache is a cache keyed by LexiconKey.
func NewLexiconCache() *Cache[*lexicon.Lexicon] {
	return New(LoadLexicon)
}
