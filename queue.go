// queue.go - Fixed-capacity byte-oriented ring buffer

/*
██████╗ ████████╗ ██████╗ ██████╗ ██████╗ ███████╗
██╔══██╗╚══██╔══╝██╔════╝██╔═══██╗██╔══██╗██╔════╝
██████╔╝   ██║   ██║     ██║   ██║██████╔╝█████╗
██╔══██╗   ██║   ██║     ██║   ██║██╔══██╗██╔══╝
██║  ██║   ██║   ╚██████╗╚██████╔╝██║  ██║███████╗
╚═╝  ╚═╝   ╚═╝    ╚═════╝ ╚═════╝ ╚═╝  ╚═╝╚══════╝

(c) 2024 - 2026 Zayn Otley
https://github.com/zotley/rtcore
License: GPLv3 or later
*/

package rtcore

// Queue is a fixed-capacity circular buffer holding FIFO storage of
// fixed-size opaque items, copied in and out by byte value. It does not
// interpret the bytes it stores; callers must supply a consistent item size
// at construction, and a consistent size on every Push/Pop thereafter.
type Queue struct {
	cs *CriticalSection

	buf      []byte
	capacity int // number of items
	itemSize int
	head     int
	tail     int
	count    int
}

// NewQueue constructs a queue and allocates its storage itself, sized
// exactly capacity*itemSize bytes; the caller does not supply the backing
// storage. A capacity or itemSize of zero yields a queue
// that always rejects Push and Pop, matching a process event queue that
// carries no events.
func NewQueue(cs *CriticalSection, capacity, itemSize int) *Queue {
	var buf []byte
	if capacity > 0 && itemSize > 0 {
		buf = make([]byte, capacity*itemSize)
	}
	return &Queue{
		cs:       cs,
		buf:      buf,
		capacity: capacity,
		itemSize: itemSize,
	}
}

// Len reports the number of unread items currently buffered.
func (q *Queue) Len() int {
	q.cs.Enter()
	defer q.cs.Exit()
	return q.count
}

// Cap reports the queue's fixed item capacity.
func (q *Queue) Cap() int { return q.capacity }

// Push copies item (which must be exactly itemSize bytes) into the slot at
// head and advances head modulo capacity. Returns false iff the queue is
// full or item's length does not match itemSize.
func (q *Queue) Push(item []byte) bool {
	if len(item) != q.itemSize || q.itemSize == 0 {
		return false
	}

	q.cs.Enter()
	defer q.cs.Exit()

	if q.count == q.capacity {
		return false
	}

	start := q.head * q.itemSize
	copy(q.buf[start:start+q.itemSize], item)
	q.head = (q.head + 1) % q.capacity
	q.count++
	return true
}

// Pop copies the item at tail into dest (which must be exactly itemSize
// bytes) and advances tail modulo capacity. Returns false iff the queue is
// empty or dest's length does not match itemSize.
func (q *Queue) Pop(dest []byte) bool {
	if len(dest) != q.itemSize || q.itemSize == 0 {
		return false
	}

	q.cs.Enter()
	defer q.cs.Exit()

	if q.count == 0 {
		return false
	}

	start := q.tail * q.itemSize
	copy(dest, q.buf[start:start+q.itemSize])
	q.tail = (q.tail + 1) % q.capacity
	q.count--
	return true
}
