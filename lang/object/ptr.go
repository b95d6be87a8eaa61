package object

import "unsafe"

// ptrOf returns p's address as a uintptr, used only as a map/visited-set
// key for the cycle-safe structural equality check in spec §4.6 — never
// for pointer arithmetic.
func ptrOf[T any](p *T) uintptr { return uintptr(unsafe.Pointer(p)) }
