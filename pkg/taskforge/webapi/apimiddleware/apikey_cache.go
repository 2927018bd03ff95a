package apimiddleware

import (
	"sync"

	"github.com/taskforge/taskforge/pkg/tfdb/stor"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
)

type APIKeyCache struct {
	apikeyCacheMu sync.RWMutex
	cache         map[string]*tfmodel.User
	userStor      stor.UserStor
}

func NewAPIKeyCache(userStor stor.UserStor) *APIKeyCache {
	return &APIKeyCache{
		cache:    make(map[string]*tfmodel.User),
		userStor: userStor,
	}
}

func (c *APIKeyCache) GetUserByAPIKey(apikey string) (*tfmodel.User, error) {
	c.apikeyCacheMu.RLock()

	if user, ok := c.cache[apikey]; ok {
		c.apikeyCacheMu.RUnlock()
		return user, nil
	}

	// Need to upgrade to a Write Lock
	c.apikeyCacheMu.RUnlock()
	c.apikeyCacheMu.Lock()
	defer c.apikeyCacheMu.Unlock()

	// Check again after acquiring the write lock; a different request may
	// have filled the entry in between.
	if user, ok := c.cache[apikey]; ok {
		return user, nil
	}

	user, err := c.userStor.GetUserByAPIToken(apikey)
	if err != nil {
		// No user matching that key
		return nil, err
	}

	c.cache[apikey] = user
	return user, nil
}

func (c *APIKeyCache) DeleteUserByAPIKey(apikey string) {
	c.apikeyCacheMu.Lock()
	defer c.apikeyCacheMu.Unlock()
	delete(c.cache, apikey)
}
