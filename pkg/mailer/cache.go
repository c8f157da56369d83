package mailer

import (
	"sync"
	texttemplate "text/template"

	"golang.org/x/sync/singleflight"
)

// compiledTemplate is a cache entry: the render function plus, for markdown
// templates, the parsed body and frontmatter metadata.
type compiledTemplate struct {
	metadata map[string]any
	render   TemplateFunc
	body     *texttemplate.Template
}

// templateCache maps template names to compiled templates.
// Entries are added lazily and never evicted.
type templateCache struct {
	items map[string]*compiledTemplate
	group singleflight.Group
	mu    sync.RWMutex
}

func newTemplateCache(seed map[string]TemplateFunc) *templateCache {
	c := &templateCache{items: make(map[string]*compiledTemplate, len(seed))}
	for name, fn := range seed {
		if fn != nil {
			c.items[name] = &compiledTemplate{render: fn}
		}
	}
	return c
}

func (c *templateCache) get(name string) (*compiledTemplate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.items[name]
	return t, ok
}

// getOrCompile returns the cached template or calls compile on a miss.
// Concurrent misses for the same name share a single compile call.
// Failed compiles are not cached.
func (c *templateCache) getOrCompile(name string, compile func() (*compiledTemplate, error)) (*compiledTemplate, error) {
	if t, ok := c.get(name); ok {
		return t, nil
	}

	v, err, _ := c.group.Do(name, func() (any, error) {
		// Double-check: another caller may have filled the entry.
		if t, ok := c.get(name); ok {
			return t, nil
		}

		t, err := compile()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.items[name] = t
		c.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*compiledTemplate), nil
}

func (c *templateCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
