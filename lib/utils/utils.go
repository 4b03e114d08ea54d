package utils

import (
	"sort"

	"golang.org/x/exp/constraints"
)

func IIf[T any](condition bool, ifTrue, ifFalse T) T {
	if condition {
		return ifTrue
	} else {
		return ifFalse
	}
}

func SortDesc[T constraints.Ordered](col []T) {
	sort.Slice(col, func(i, j int) bool {
		return col[i] > col[j]
	})
}
