package memo

// node is an entry of the per-shard recency list; head is most recent.
type node[V any] struct {
	key        uint64
	value      V
	prev, next *node[V]
}

// list is an intrusive doubly-linked list. Not safe for concurrent use.
type list[V any] struct {
	head, tail *node[V]
	len        int
}

func (l *list[V]) pushFront(key uint64, value V) *node[V] {
	n := &node[V]{key: key, value: value}
	l.linkFront(n)
	return n
}

func (l *list[V]) linkFront(n *node[V]) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.len++
}

func (l *list[V]) moveToFront(n *node[V]) {
	if n == l.head {
		return
	}
	l.remove(n)
	l.linkFront(n)
}

func (l *list[V]) back() *node[V] { return l.tail }

func (l *list[V]) remove(n *node[V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.len--
}
