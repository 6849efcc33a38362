package utils

import (
	"log"
	"time"
)

// TimeNowNY returns the current time in the US market time zone.
func TimeNowNY() time.Time {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return time.Now().In(loc)
}

// ToPointer returns a pointer to the given value.
func ToPointer[T any](v T) *T {
	return &v
}

// ValueOrZero dereferences a pointer, returning the zero value when nil.
func ValueOrZero[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// GoSafe runs fn in a goroutine and recovers from panics so a single
// misbehaving handler cannot take the whole service down.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("recovered from panic: %v", r)
			}
		}()
		fn()
	}()
}
