// Package layout implements the attribute-layout mini-language: a small grammar embedded in
// attribute definitions that describes how to read an attribute's byte payload and which bands
// each piece of it belongs to.
//
// Parsing a layout string yields a tree of Elements. Call elements don't own their own
// sub-layout; instead they reference a Callable by relative index, resolved by ResolveCalls after
// parsing. Parse registers the top-level layout as the only callable; bracketed callable bodies
// are rejected, so a layout string cannot declare several top-level callables. Callables
// live in an Arena and are referenced by integer id rather than by pointer cycle, since a call can
// legally point backwards at an enclosing callable — a genuine cyclic graph that a plain pointer
// tree can't express without becoming unreachable-by-GC or requiring weak references.
package layout
