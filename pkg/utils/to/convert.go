// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.
package to

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
)

func Ptr[T any](v T) *T {
	return to.Ptr(v)
}

// Val dereferences v, returning the zero value for nil.
func Val[T any](v *T) T {
	var empty T
	if v == nil {
		return empty
	}
	return *v
}

// Equal reports whether v is non-nil and points to a value equal to want.
func Equal[T comparable](v *T, want T) bool {
	return v != nil && *v == want
}
