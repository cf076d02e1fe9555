package probe

import (
	"os"
	"path/filepath"
)

// walkStack sums regular files under root with an explicit work list
// instead of recursion, so deep trees only grow the slice.
func (p *Probe) walkStack(root string, dev Device) uint64 {
	var total uint64
	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		dirEntries, err := readDirUnsorted(dir)
		if err != nil {
			p.log.V(1).Info("skipping unreadable directory", "path", dir, "err", err.Error())
			if len(dirEntries) == 0 {
				continue
			}
		}

		for _, de := range dirEntries {
			childPath := filepath.Join(dir, de.Name())
			if p.opts.ShouldExclude(childPath) {
				continue
			}

			switch {
			case de.IsDir():
				if p.opts.Xdev && dev.known {
					info, err := de.Info()
					if err != nil {
						p.log.V(1).Info("skipping unreadable directory", "path", childPath, "err", err.Error())
						continue
					}
					if p.crossesDevice(info, dev) {
						continue
					}
				}
				stack = append(stack, childPath)
			case de.Type().IsRegular():
				info, err := de.Info()
				if err != nil {
					p.log.V(1).Info("skipping unreadable file", "path", childPath, "err", err.Error())
					continue
				}
				total = addSaturating(total, fileSize(info))
			}
		}
	}
	return total
}

// readDirUnsorted lists dir in the order the filesystem returns entries.
// Entries read before a failure are still returned alongside the error.
func readDirUnsorted(dir string) ([]os.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadDir(-1)
}
