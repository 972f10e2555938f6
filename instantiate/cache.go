// Copyright 2021 Torben Schinke
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package instantiate

import (
	"sync"

	"github.com/mcdoc-lang/mcdoc/ast"
	"github.com/mcdoc-lang/mcdoc/diag"
)

type result struct {
	typ   ast.TypeExpr
	diags diag.List
}

type call struct {
	done chan struct{}
	res  result
}

// Cache memoizes Instantiate calls by key (a canonical path plus a
// signature of its generic bindings), collapsing concurrent requests for
// the same key into one computation -- a hand-rolled single-flight, since
// the call's actual work (tree construction) is cheap enough that a full
// third-party single-flight library would be overkill for this engine's
// access pattern.
type Cache struct {
	mu    sync.Mutex
	calls map[string]*call
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{calls: map[string]*call{}}
}

// Do runs fn for key, or waits for and returns an in-flight/previous call's
// result if one exists.
func (c *Cache) Do(key string, fn func() (ast.TypeExpr, diag.List)) (ast.TypeExpr, diag.List) {
	c.mu.Lock()

	if existing, ok := c.calls[key]; ok {
		c.mu.Unlock()
		<-existing.done

		return existing.res.typ, existing.res.diags
	}

	cl := &call{done: make(chan struct{})}
	c.calls[key] = cl
	c.mu.Unlock()

	typ, diags := fn()
	cl.res = result{typ: typ, diags: diags}
	close(cl.done)

	return typ, diags
}
