package model

// estimateListener receives signed changes to a child's estimated time to
// complete. Delivery is synchronous; the change has been stored before any
// listener runs.
type estimateListener interface {
	estimateChanged(delta int)
}

type subscription uint64

// notifier fans estimate deltas out to every subscribed parent project.
type notifier struct {
	next      subscription
	order     []subscription
	listeners map[subscription]estimateListener
}

func (n *notifier) subscribe(l estimateListener) subscription {
	if n.listeners == nil {
		n.listeners = make(map[subscription]estimateListener)
	}
	n.next++
	n.listeners[n.next] = l
	n.order = append(n.order, n.next)
	return n.next
}

func (n *notifier) unsubscribe(s subscription) {
	if _, ok := n.listeners[s]; !ok {
		return
	}
	delete(n.listeners, s)
	for i, id := range n.order {
		if id == s {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
}

func (n *notifier) broadcast(delta int) {
	if delta == 0 {
		return
	}
	for _, id := range append([]subscription(nil), n.order...) {
		if l, ok := n.listeners[id]; ok {
			l.estimateChanged(delta)
		}
	}
}

func (n *notifier) subscribers() int {
	return len(n.listeners)
}
