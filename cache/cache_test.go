package cache

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/hazards/config"
	"github.com/domino14/hazards/lexicon"
)

func TestGetLoadsOnce(t *testing.T) {
	is := is.New(t)
	calls := 0
	c := New(func(cfg *config.Config, key string) (string, error) {
		calls++
		return "v-" + key, nil
	})
	cfg := config.DefaultConfig()
	for range 3 {
		v, err := c.Get(cfg, "a")
		is.NoErr(err)
		is.Equal(v, "v-a")
	}
	is.Equal(calls, 1)
	is.Equal(c.Len(), 1)

	c.Evict("a")
	_, err := c.Get(cfg, "a")
	is.NoErr(err)
	is.Equal(calls, 2)
}

func TestFailedLoadNotCached(t *testing.T) {
	is := is.New(t)
	fail := true
	c := New(func(cfg *config.Config, key string) (int, error) {
		if fail {
			return 0, errors.New("boom")
		}
		return 7, nil
	})
	cfg := config.DefaultConfig()
	_, err := c.Get(cfg, "k")
	is.True(err != nil)
	is.Equal(c.Len(), 0)
	fail = false
	v, err := c.Get(cfg, "k")
	is.NoErr(err)
	is.Equal(v, 7)
}

func TestConcurrentGet(t *testing.T) {
	is := is.New(t)
	var mu sync.Mutex
	calls := 0
	c := New(func(cfg *config.Config, key string) (int, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return len(key), nil
	})
	cfg := config.DefaultConfig()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Get(cfg, "four")
			is.NoErr(err)
			is.Equal(v, 4)
		}()
	}
	wg.Wait()
	is.Equal(calls, 1)
}

func TestLexiconCache(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	blocked := filepath.Join(dir, "blocked.txt")
	is.NoErr(os.WriteFile(words, []byte("cat\ndog\nhell\n"), 0644))
	is.NoErr(os.WriteFile(blocked, []byte("hell\n"), 0644))

	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigLexiconFile, words)
	cfg.Set(config.ConfigBlocklistFile, blocked)

	c := NewLexiconCache()
	lex, err := c.Get(cfg, LexiconKey(cfg))
	is.NoErr(err)
	is.Equal(lex.Name(), "words")
	is.True(lex.IsWord("CAT"))
	is.True(!lex.IsWord("HELL"))

	again, err := c.Get(cfg, LexiconKey(cfg))
	is.NoErr(err)
	is.True(again == lex)
}

func TestLexiconKeyDefault(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	is.Equal(LexiconKey(cfg), lexicon.DefaultName+"||11")
}
