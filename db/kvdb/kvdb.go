package kvdb

const (
	// RebuildsBucket holds one JSON rebuild record per request ID.
	RebuildsBucket = "rebuilds"
)

var buckets = []string{RebuildsBucket}

type DB interface {
	Set(bucket string, key string, value string) error
	Get(bucket string, key string) (string, error)
	Delete(bucket string, key string) error
	GetAllKeys(bucket string) ([]string, error)
	Close() error
}
