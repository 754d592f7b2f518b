package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// loadROMImage reads a fixed-size ROM image from disk, preferring a
// read-only mmap (avoiding a second in-process copy of a 2 MiB image)
// and falling back to a plain read when the mmap call fails. Grounded on the sanitized, error-coded file
// access idiom used for on-disk resources elsewhere in this codebase's
// lineage, adapted here from byte-at-a-time MMIO transfer to a single
// bulk load.
func loadROMImage(path string, expectedSize int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sw10play: opening ROM image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("sw10play: statting ROM image: %w", err)
	}
	if int(info.Size()) != expectedSize {
		return nil, fmt.Errorf("sw10play: ROM image %s is %d bytes, want %d", path, info.Size(), expectedSize)
	}

	if data, err := mmapReadOnly(int(f.Fd()), expectedSize); err == nil {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sw10play: reading ROM image: %w", err)
	}
	return data, nil
}

func mmapReadOnly(fd, size int) ([]byte, error) {
	return unix.Mmap(fd, 0, size, unix.PROT_READ, unix.MAP_SHARED)
}
