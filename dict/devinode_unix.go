//go:build unix

package dict

import (
	"fmt"
	"os"
	"syscall"
)

// devInode extracts the (dev, inode) pair on unix platforms, the stable
// file identity names as the preferred cache key.
func devInode(st os.FileInfo) (string, bool) {
	sys, ok := st.Sys().(*syscall.Stat_t)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%d:%d", sys.Dev, sys.Ino), true
}
