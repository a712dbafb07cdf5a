package boot

import (
	"context"
	"entremesa/src/config"
	"entremesa/src/db"
	"entremesa/src/lib"
	"log"
	"time"
)

// InitStore fails fast when the data store credentials are missing. There is
// no schema to migrate here: the hosted store owns the tables.
func InitStore() *db.Client {
	if config.SupabaseURL() == "" || config.SupabaseKey() == "" {
		log.Fatal("SUPABASE_URL and SUPABASE_KEY must be set")
	}
	return db.GetClient()
}

// InitCache pings redis once at startup. The cache is optional, so a missing
// or unreachable redis only logs.
func InitCache() {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rd.Ping(ctx).Err(); err != nil {
		log.Printf("[redis] Ping failed: %s\n", err.Error())
	}
}
