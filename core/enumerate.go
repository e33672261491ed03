package core

import "github.com/devblok/vkbind/native"

// enumerate runs the count-then-fill query idiom. The first call sizes the
// buffer, the second fills it. A driver reporting more records on the second
// call than it reported on the first is an Incomplete native error. Every
// filled record goes through convert in order.
func enumerate[N, T any](op string, query func(count *uint32, buf []N) native.Result, convert func(*N) (T, error)) ([]T, error) {
	var count uint32
	if err := check(op, query(&count, nil)); err != nil {
		return nil, err
	}

	capacity := count
	buf := make([]N, capacity)
	if capacity > 0 {
		r := query(&count, buf)
		if r == native.Incomplete || count > capacity {
			return nil, nativeErrorf(op, native.Incomplete, "more records than the %d reported by the first call", capacity)
		}
		if err := check(op, r); err != nil {
			return nil, err
		}
	}

	out := make([]T, 0, count)
	for i := range buf[:count] {
		v, err := convert(&buf[i])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// infallible adapts a query without a result code to the enumerate signature
func infallible[N any](query func(count *uint32, buf []N)) func(*uint32, []N) native.Result {
	return func(count *uint32, buf []N) native.Result {
		query(count, buf)
		return native.Success
	}
}

func identity[N any](n *N) (N, error) {
	return *n, nil
}
