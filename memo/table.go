package memo

// node is one step of a key path. A node holds a result only once present is
// set; intermediate nodes exist for longer keys sharing this prefix.
type node[R any] struct {
	children map[any]*node[R]
	result   R
	present  bool
	id       uint64
}

// table maps keys to results through a trie of maps, one level per key
// component. It is not safe for concurrent use.
type table[R any] struct {
	root node[R]
	size int
	seq  uint64
}

func newTable[R any]() *table[R] {
	return &table[R]{}
}

// load reports the stored result for k. The presence flag, not the result,
// tells hits from misses: a zero result is a hit.
func (t *table[R]) load(k key) (R, bool) {
	n := t.find(k)
	if n == nil || !n.present {
		var zero R
		return zero, false
	}
	return n.result, true
}

// store records r under k. An existing entry is kept: entries go from absent
// to present once and never change afterwards.
func (t *table[R]) store(k key, r R) {
	t.fill(t.walk(k), r)
}

func (t *table[R]) fill(n *node[R], r R) {
	if n.present {
		return
	}
	n.result = r
	n.present = true
	t.size++
}

// find returns the node for k without creating anything.
func (t *table[R]) find(k key) *node[R] {
	n := &t.root
	for _, p := range k.parts {
		next, ok := n.children[p]
		if !ok {
			return nil
		}
		n = next
	}
	return n
}

// walk returns the node for k, creating missing nodes along the path.
func (t *table[R]) walk(k key) *node[R] {
	n := &t.root
	for _, p := range k.parts {
		next, ok := n.children[p]
		if !ok {
			if n.children == nil {
				n.children = make(map[any]*node[R])
			}
			t.seq++
			next = &node[R]{id: t.seq}
			n.children[p] = next
		}
		n = next
	}
	return n
}

func (t *table[R]) len() int {
	return t.size
}
