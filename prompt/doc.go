/*
Package prompt manages stored prompt definitions for LLM calls.

The Manager composes the local prompt cache, the template compiler and a
Fetcher collaborator into one retrieval path: fresh cache hits are served
directly, stale entries are served while a single-flight background refresh
revalidates them, and misses fetch synchronously. When every network path
fails, a caller-supplied Fallback still yields a renderable template;
otherwise the caller receives a typed *Error.

The HTTP Client is the default Fetcher implementation against a prompt-store
REST endpoint. Custom stores plug in by implementing Fetcher.
*/
package prompt
