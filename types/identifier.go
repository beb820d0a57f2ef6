package types

/*
Identifier is the contract between the cache and the external ID source.

The cache does not mint identifiers. A snowflake-style generator (see the
flake package for the stock one) is responsible for uniqueness and rough
time ordering; the cache trusts it blindly and only guards against key
collisions on Add.
*/
type Identifier interface {

	// ID returns the 64-bit identifier. This is the cache key.
	ID() uint64

	// String returns the decimal rendering of the identifier. Stored on the
	// entry because string IDs are often easier substitutes for bigints.
	String() string

	// TimestampMillis returns the identifier's creation time in Unix
	// milliseconds, as encoded by the generator.
	TimestampMillis() int64
}
