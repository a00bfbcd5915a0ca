// Package storage provides an abstraction layer over the filesystem holding the documents.
//
// It wraps an afero.Fs so the same code runs against the operating system in production
// and against in-memory or read-only filesystems in tests.
//
// # Client Interface
//
// The Client interface abstracts document access, making it easy to mock storage
// interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - Exists: Checks a regular file is present.
//   - ReadFile: Reads a whole document.
//   - CheckWritable: Opens the document write-only, without truncating, to verify permissions.
//   - WriteFile: Replaces a document. With Config.Atomic the data is staged in a
//     uniquely named sibling file and renamed over the target, keeping the original mode.
//     A symlinked document is resolved first, so the link survives and its target is updated.
//
// Failures carry the codes from core/errors (NOT_FOUND, UNWRITABLE, IO_ERROR).
//
// # Usage
//
//	client := storage.NewOsClient(storage.Config{Atomic: true})
//	data, err := client.ReadFile("config.yaml")
package storage
