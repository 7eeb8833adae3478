package redis

const (
	// KeyPrefixRecord is the prefix for record keys
	KeyPrefixRecord = "folio:rec:"
	// KeyPrefixIDs is the prefix for per-collection id lists
	KeyPrefixIDs = "folio:ids:"
	// KeyPrefixIndex is the prefix for per-collection ordering indexes
	KeyPrefixIndex = "folio:idx:"
	// KeyPrefixChanges is the prefix for per-collection change channels
	KeyPrefixChanges = "folio:changes:"
)

// RecordKey returns the Redis key holding one record's JSON document.
func RecordKey(collection, id string) string {
	return KeyPrefixRecord + collection + ":" + id
}

// IDsKey returns the key of the list of record ids for a collection. A list
// rather than a set: insertion order is the store-native order used to break
// sorting ties.
func IDsKey(collection string) string {
	return KeyPrefixIDs + collection
}

// IndexKey returns the key of the sorted set indexing a collection by one
// numeric field.
func IndexKey(collection, field string) string {
	return KeyPrefixIndex + collection + ":" + field
}

// ChangeChannel returns the pub/sub channel carrying change events for a
// collection.
func ChangeChannel(collection string) string {
	return KeyPrefixChanges + collection
}
