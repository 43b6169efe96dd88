package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resumehub/internal/database"
	"resumehub/internal/logger"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

// UserLocker serializes work for one user. The returned unlock is safe to
// call more than once.
type UserLocker interface {
	Lock(ctx context.Context, userID string) (unlock func(), err error)
}

// NewUserLocker picks the distributed lock when a cache is configured.
func NewUserLocker(db database.DB) UserLocker {
	if db.Cache.Lock != nil {
		return NewValkeyUserLocker(db.Cache.Lock)
	}
	return NewMemoryUserLocker()
}

type memoryLockEntry struct {
	sem  chan struct{}
	refs int
}

type MemoryUserLocker struct {
	mu    sync.Mutex
	locks map[string]*memoryLockEntry
}

func NewMemoryUserLocker() *MemoryUserLocker {
	return &MemoryUserLocker{locks: map[string]*memoryLockEntry{}}
}

func (l *MemoryUserLocker) Lock(ctx context.Context, userID string) (func(), error) {
	l.mu.Lock()
	entry, ok := l.locks[userID]
	if !ok {
		entry = &memoryLockEntry{sem: make(chan struct{}, 1)}
		l.locks[userID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(userID, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.sem
			l.release(userID, entry)
		})
	}, nil
}

func (l *MemoryUserLocker) release(userID string, entry *memoryLockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, userID)
	}
}

const (
	userLockTTL        = 30 * time.Second
	userLockRetryDelay = 50 * time.Millisecond
	userLockKeyPattern = "lock:user:%s"
)

var unlockScript = valkey.NewLuaScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type ValkeyUserLocker struct {
	client database.CacheClient
	ttl    time.Duration
	log    logger.Logger
}

func NewValkeyUserLocker(client database.CacheClient) *ValkeyUserLocker {
	return &ValkeyUserLocker{
		client: client,
		ttl:    userLockTTL,
		log:    logger.New("ValkeyUserLocker"),
	}
}

func (l *ValkeyUserLocker) Lock(ctx context.Context, userID string) (func(), error) {
	log := l.log.Function("Lock")

	key := fmt.Sprintf(userLockKeyPattern, userID)
	token := uuid.NewString()

	for {
		err := l.client.Do(ctx, l.client.B().Set().
			Key(key).
			Value(token).
			Nx().
			PxMilliseconds(l.ttl.Milliseconds()).
			Build(),
		).Error()
		if err == nil {
			break
		}
		if !valkey.IsValkeyNil(err) {
			return nil, log.Err("failed to acquire user lock", err, "userID", userID)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(userLockRetryDelay):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			unlockCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := unlockScript.Exec(unlockCtx, l.client, []string{key}, []string{token}).Error(); err != nil &&
				!valkey.IsValkeyNil(err) {
				log.Er("failed to release user lock", err, "userID", userID)
			}
		})
	}, nil
}
