package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	pepperMu sync.RWMutex
	pepper   string
)

// Pepper returns the process-wide pepper mixed into secret hashes. It is
// empty until LoadPepper or SetPepper has been called.
func Pepper() string {
	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepper
}

// SetPepper overrides the pepper. Used by tests and tooling.
func SetPepper(p string) {
	pepperMu.Lock()
	pepper = p
	pepperMu.Unlock()
}

// LoadPepper reads the pepper from file, generating and persisting a new
// random one (0600) when the file does not exist yet.
func LoadPepper(file string) error {
	file = filepath.Clean(file)

	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		SetPepper(strings.TrimSpace(string(data)))
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return err
	}

	buf := make([]byte, keyLength)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	p := base64.RawURLEncoding.EncodeToString(buf)

	if err := os.WriteFile(file, []byte(p), 0o600); err != nil {
		return err
	}

	SetPepper(p)
	return nil
}
