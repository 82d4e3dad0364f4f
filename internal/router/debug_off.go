//go:build !tmpalloc_debug

package router

import "unsafe"

func debugMarkAllocated(unsafe.Pointer) {}

func debugMarkFreed(unsafe.Pointer) {}
