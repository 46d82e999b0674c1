package health

import (
	"net"
	"strconv"

	"github.com/ukp-platform/ukp-api/internal/config"
)

// Names of the registered dependency targets.
const (
	DependencyDatabase = "database"
	DependencyRedis    = "redis"
)

// Target is a network-addressable dependency.
type Target struct {
	Name string
	Host string
	Port int
}

// Addr returns the host:port form of the target.
func (t Target) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// CollectTargets returns the dependencies of cfg in a fixed order: the
// datastore first, the cache second. Failure reports rely on this order.
func CollectTargets(cfg *config.Config) []Target {
	db := cfg.Database()
	cache := cfg.Cache()
	return []Target{
		{Name: DependencyDatabase, Host: db.Host, Port: db.Port},
		{Name: DependencyRedis, Host: cache.Host, Port: cache.Port},
	}
}
