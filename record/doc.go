// Package record defines the contract between a table and the values it stores.
//
// A record kind is described by a [Codec]: every value serializes to exactly
// Size() bytes and exposes an ordered key. Tables never inspect values
// directly; they only move fixed-width byte slices around and hand the key to
// caller-supplied predicates.
//
// # Built-in kinds
//
//   - [Point]: a 12-byte (timestamp, value) sample keyed by timestamp
//
// # Custom kinds
//
//	type tick struct{ ts uint64; bid, ask float64 }
//
//	type tickCodec struct{}
//
//	func (tickCodec) Size() int             { return 24 }
//	func (tickCodec) Key(t tick) uint64     { return t.ts }
//	func (tickCodec) Put(dst []byte, t tick) { ... }
//	func (tickCodec) Get(src []byte) tick    { ... }
//
// Byte order is the codec's choice, but Put and Get must agree.
package record
