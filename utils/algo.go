package utils

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

func GetMapSortedKeySlice[K constraints.Ordered, V any](theMap map[K]V) []K {
	result := make([]K, len(theMap))

	i := 0
	for f := range theMap {
		result[i] = f
		i++
	}
	// 为何 泛型sort比 interface{} sort 快:
	// https://eli.thegreenplace.net/2022/faster-sorting-with-go-generics/

	slices.Sort(result)

	return result
}

// 按 key 分组计数
func CountBy[T any, K comparable](a []T, key func(T) K) map[K]int {
	m := make(map[K]int, len(a))
	for _, v := range a {
		m[key(v)]++
	}
	return m
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
