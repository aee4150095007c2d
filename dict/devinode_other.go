//go:build !unix

package dict

import "os"

// devInode has no portable equivalent outside unix; callers fall back to a
// UUID-keyed identity.
func devInode(st os.FileInfo) (string, bool) { return "", false }
