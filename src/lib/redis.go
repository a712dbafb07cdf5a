package lib

import (
	"context"
	"entremesa/src/types"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

// CachePrincipal stores the freshly authenticated principal so dashboard
// polls can skip the role-table lookup. Cache failures are logged, never
// surfaced: the store row stays authoritative.
func CachePrincipal(p *types.Principal) {
	rd := GetRedisClient()
	if rd == nil {
		return
	}
	key := fmt.Sprintf("%s:%d:user", p.Tipo, p.ID)
	if _, err := rd.JSONSet(context.Background(), key, "$", p).Result(); err != nil {
		log.Printf("[redis] Error updating principal cache: %s\n", err.Error())
	}
}
