package db

import (
	"fmt"
	"log"
	"sync"

	"github.com/dgraph-io/ristretto"
)

// In-process read cache for transaction lists and monthly analyses. Keys are
// tracked per resource type so a write can invalidate every cached read of the
// same user without touching other users' entries.
var (
	Cache *ristretto.Cache

	transactionKeys = keySet{m: make(map[string]struct{})}
	analysisKeys    = keySet{m: make(map[string]struct{})}
)

type keySet struct {
	sync.Mutex
	m map[string]struct{}
}

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000,
		MaxCost:     10000,
		BufferItems: 64,
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func TransactionListKey(userID int64, startDate, endDate, category string) string {
	return fmt.Sprintf("transactions:%d:%s:%s:%s", userID, startDate, endDate, category)
}

func AnalysisKey(userID int64, month string) string {
	return fmt.Sprintf("analysis:%d:%s", userID, month)
}

func SetTransactionCache(key string, value interface{}) {
	transactionKeys.Lock()
	transactionKeys.m[key] = struct{}{}
	transactionKeys.Unlock()
	Cache.Set(key, value, 1)
}

func SetAnalysisCache(key string, value interface{}) {
	analysisKeys.Lock()
	analysisKeys.m[key] = struct{}{}
	analysisKeys.Unlock()
	Cache.Set(key, value, 1)
}

// InvalidateUserTransactions drops every cached transaction list belonging to
// the user. Called after any transaction write since filtered lists cannot be
// invalidated individually.
func InvalidateUserTransactions(userID int64) {
	prefix := fmt.Sprintf("transactions:%d:", userID)
	transactionKeys.Lock()
	for key := range transactionKeys.m {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			Cache.Del(key)
			delete(transactionKeys.m, key)
		}
	}
	transactionKeys.Unlock()
}
