package trap

import (
	"sync"

	"github.com/marcus/modals/pkg/host"
)

// scrollLock counts the traps holding a document's scroll suppression and
// remembers the flag they found.
type scrollLock struct {
	count int
	prior bool
}

var (
	scrollMu sync.Mutex
	scrolls  = map[*host.Document]*scrollLock{}
)

// lockScroll suppresses scrolling on doc and returns the matching release.
// The prior flag is restored when the last holder releases.
func lockScroll(doc *host.Document) func() {
	scrollMu.Lock()
	l := scrolls[doc]
	if l == nil {
		l = &scrollLock{prior: doc.ScrollSuppressed()}
		scrolls[doc] = l
	}
	l.count++
	doc.SetScrollSuppressed(true)
	scrollMu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { unlockScroll(doc) }) }
}

func unlockScroll(doc *host.Document) {
	scrollMu.Lock()
	defer scrollMu.Unlock()
	l := scrolls[doc]
	if l == nil {
		return
	}
	l.count--
	if l.count > 0 {
		return
	}
	doc.SetScrollSuppressed(l.prior)
	delete(scrolls, doc)
}

// LockCount returns how many mounted traps hold doc's scroll lock.
func LockCount(doc *host.Document) int {
	scrollMu.Lock()
	defer scrollMu.Unlock()
	if l := scrolls[doc]; l != nil {
		return l.count
	}
	return 0
}
