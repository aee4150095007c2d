package dict

import (
	"fmt"
	"os"
	"time"
)

// acquireFileLock implements the fallback advisory lock for save: on
// systems without fcntl locks, fall back to testing file existence and
// using atomic truncate-then-rewrite, using an exclusive-create sentinel
// file as the lock primitive (see DESIGN.md for why this stays on the
// standard library rather than a third-party locking package).
func acquireFileLock(path string) (release func(), err error) {
	lockPath := path + ".lock"
	const retry = 10
	const wait = 20 * time.Millisecond
	var f *os.File
	for i := 0; i < retry; i++ {
		f, err = os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return nil, err
		}
		time.Sleep(wait)
	}
	if err != nil {
		return nil, fmt.Errorf("cant_write_file: lock %s held: %w", lockPath, err)
	}
	f.Close()
	return func() { os.Remove(lockPath) }, nil
}
