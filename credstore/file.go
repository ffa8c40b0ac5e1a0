package credstore

import (
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/oauth2"
)

const (
	tokenFileName    = "tokens.cred"
	snapshotFileName = "session.cred"

	saltLength  = 16
	nonceLength = 24

	// scrypt parameters, interactive-strength
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

var _ SnapshotBackend = (*FileBackend)(nil)

// FileBackend is the durable backend: records are encrypted with a key derived
// from the configured credential secret and written under the data folder.
// Tokens and the session snapshot live in separate files so either can be
// cleared without touching the other.
type FileBackend struct {
	dir    string
	secret string
}

// NewFileBackend creates the data folder if needed. The secret seals every
// record; changing it invalidates previously written credentials.
func NewFileBackend(dir, secret string) (*FileBackend, error) {
	if secret == "" {
		return nil, errors.New("[NewFileBackend] credential secret is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "[NewFileBackend] create data folder")
	}
	return &FileBackend{dir: dir, secret: secret}, nil
}

func (b *FileBackend) SaveTokens(tok *oauth2.Token) error {
	return b.writeRecord(tokenFileName, tok)
}

func (b *FileBackend) LoadTokens() (*oauth2.Token, error) {
	var tok oauth2.Token
	ok, err := b.readRecord(tokenFileName, &tok)
	if err != nil || !ok {
		return nil, err
	}
	return &tok, nil
}

func (b *FileBackend) ClearTokens() error {
	return b.removeRecord(tokenFileName)
}

func (b *FileBackend) SaveSnapshot(snap *Snapshot) error {
	return b.writeRecord(snapshotFileName, snap)
}

func (b *FileBackend) LoadSnapshot() (*Snapshot, error) {
	var snap Snapshot
	ok, err := b.readRecord(snapshotFileName, &snap)
	if err != nil || !ok {
		return nil, err
	}
	return &snap, nil
}

func (b *FileBackend) ClearSnapshot() error {
	return b.removeRecord(snapshotFileName)
}

// writeRecord seals the JSON encoding of v and replaces the record file
// atomically. Layout: salt | nonce | box.
func (b *FileBackend) writeRecord(name string, v any) error {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "[FileBackend.writeRecord] marshal")
	}

	var salt [saltLength]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return errors.Wrap(err, "[FileBackend.writeRecord] rand salt")
	}
	var nonce [nonceLength]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return errors.Wrap(err, "[FileBackend.writeRecord] rand nonce")
	}

	key, err := b.deriveKey(salt[:])
	if err != nil {
		return err
	}

	sealed := append(salt[:], nonce[:]...)
	sealed = secretbox.Seal(sealed, plaintext, &nonce, key)

	path := filepath.Join(b.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, sealed, 0o600); err != nil {
		return errors.Wrap(err, "[FileBackend.writeRecord] write")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, "[FileBackend.writeRecord] rename")
	}
	return nil
}

// readRecord reports false with no error when the record is absent.
func (b *FileBackend) readRecord(name string, v any) (bool, error) {
	raw, err := os.ReadFile(filepath.Join(b.dir, name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "[FileBackend.readRecord] read")
	}
	if len(raw) < saltLength+nonceLength+secretbox.Overhead {
		return false, errors.New("[FileBackend.readRecord] record truncated")
	}

	key, err := b.deriveKey(raw[:saltLength])
	if err != nil {
		return false, err
	}
	var nonce [nonceLength]byte
	copy(nonce[:], raw[saltLength:saltLength+nonceLength])

	plaintext, ok := secretbox.Open(nil, raw[saltLength+nonceLength:], &nonce, key)
	if !ok {
		return false, errors.New("[FileBackend.readRecord] record corrupt or secret changed")
	}
	if err := json.Unmarshal(plaintext, v); err != nil {
		return false, errors.Wrap(err, "[FileBackend.readRecord] unmarshal")
	}
	return true, nil
}

func (b *FileBackend) removeRecord(name string) error {
	err := os.Remove(filepath.Join(b.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileBackend.removeRecord] remove")
	}
	return nil
}

func (b *FileBackend) deriveKey(salt []byte) (*[32]byte, error) {
	raw, err := scrypt.Key([]byte(b.secret), salt, scryptN, scryptR, scryptP, 32)
	if err != nil {
		return nil, errors.Wrap(err, "[FileBackend.deriveKey] scrypt")
	}
	var key [32]byte
	copy(key[:], raw)
	return &key, nil
}
