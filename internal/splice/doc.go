// Package splice adapts an arbitrary destination into a pipe-backed
// descriptor and moves filled output regions into it with vmsplice, so
// generated bytes reach the consumer without a user-space copy.
//
// Destinations that are not already pipes are upgraded transparently: a
// relay child (`cat`) is interposed between a fresh pipe and the real
// writer. The observable byte stream is unchanged either way.
//
// Only Linux has the zero-copy path; other platforms refuse at Open.
package splice
