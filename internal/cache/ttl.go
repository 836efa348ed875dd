package cache

import "time"

// TTLPolicy carries the expiry per key class. Items and counts live long,
// lists shorter, name lookups shortest since they only short-circuit
// duplicate-name validation.
type TTLPolicy struct {
	Item  time.Duration
	List  time.Duration
	Count time.Duration
	Name  time.Duration
}

func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		Item:  time.Hour,
		List:  30 * time.Minute,
		Count: time.Hour,
		Name:  5 * time.Minute,
	}
}
