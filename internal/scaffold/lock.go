package scaffold

import (
	"github.com/gofrs/flock"
)

// acquireLock takes the site lock without waiting.
func acquireLock(path string) (*flock.Flock, error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, Wrap(ErrLocked, "acquire lock", path, err)
	}
	if !ok {
		return nil, Wrap(ErrLocked, "acquire lock", "another scaffold run is using this site ("+path+")", nil)
	}
	return lock, nil
}
