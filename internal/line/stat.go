package line

import (
	"bufio"
	"fmt"
	"os"
	"os/user"
	"strconv"
	"syscall"
	"time"
)

// OSStat is the default StatReader, backed by os.Stat and the Unix
// syscall.Stat_t fields for ownership and access time -- the same
// facts get_owner_user/get_owner_group/get_time_last_accessed expose
// in the reference, by way of Python's os.stat().
type OSStat struct{}

func (OSStat) FileSize(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Size: %d bytes", info.Size()), nil
}

func (OSStat) LastModified(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return "Last modified: " + info.ModTime().Format(time.RFC1123), nil
}

func (OSStat) LastAccessed(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return "Last accessed: unknown", nil
	}
	atime := time.Unix(stat.Atim.Sec, stat.Atim.Nsec)
	return "Last accessed: " + atime.Format(time.RFC1123), nil
}

func (OSStat) OwnerUser(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return "Owner: unknown", nil
	}
	u, err := user.LookupId(strconv.Itoa(int(stat.Uid)))
	if err != nil {
		return fmt.Sprintf("Owner: uid %d", stat.Uid), nil
	}
	return "Owner: " + u.Username, nil
}

func (OSStat) OwnerGroup(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return "Group: unknown", nil
	}
	g, err := user.LookupGroupId(strconv.Itoa(int(stat.Gid)))
	if err != nil {
		return fmt.Sprintf("Group: gid %d", stat.Gid), nil
	}
	return "Group: " + g.Name, nil
}

func (OSStat) LineCount(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		count++
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("Lines: %d", count), nil
}
