package wallet

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"golang.org/x/crypto/scrypt"
)

const (
	keyHeaderKDF = "scrypt"

	// StandardScryptN and StandardScryptP use 256MB memory and about 1s cpu.
	StandardScryptN = 1 << 18
	StandardScryptP = 1

	// LightScryptN and LightScryptP use 4MB memory and about 100ms cpu.
	LightScryptN = 1 << 12
	LightScryptP = 6

	scryptR     = 8
	scryptDKLen = 32

	latestVersion = 3
)

var (
	// ErrDecrypt is returned when the mac does not match, i.e. a wrong password.
	ErrDecrypt = errors.New("could not decrypt key with given passphrase")
	ErrNoKey   = errors.New("key not found in keystore")
)

// Key is a plaintext secp256k1 key.
type Key struct {
	ID         uuid.UUID
	Address    common.Address
	PrivateKey *ecdsa.PrivateKey
}

type cipherparamsJSON struct {
	IV string `json:"iv"`
}

type cryptoJSON struct {
	Cipher       string                 `json:"cipher"`
	CipherText   string                 `json:"ciphertext"`
	CipherParams cipherparamsJSON       `json:"cipherparams"`
	KDF          string                 `json:"kdf"`
	KDFParams    map[string]interface{} `json:"kdfparams"`
	MAC          string                 `json:"mac"`
}

type encryptedKeyJSONV3 struct {
	Address string     `json:"address"`
	Crypto  cryptoJSON `json:"crypto"`
	ID      string     `json:"id"`
	Version int        `json:"version"`
}

func newKey(priv *ecdsa.PrivateKey) (*Key, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	return &Key{
		ID:         id,
		Address:    crypto.PubkeyToAddress(priv.PublicKey),
		PrivateKey: priv,
	}, nil
}

// encryptKey derives an aes-128-ctr key from password with scrypt; the mac
// over the second half of the derived key checks the password on decrypt.
func encryptKey(key *Key, password string, scryptN, scryptP int) ([]byte, error) {
	salt, err := entropy(32)
	if err != nil {
		return nil, err
	}
	derivedKey, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptDKLen)
	if err != nil {
		return nil, err
	}

	iv, err := entropy(aes.BlockSize)
	if err != nil {
		return nil, err
	}
	keyBytes := crypto.FromECDSA(key.PrivateKey)
	cipherText, err := aesCTRXOR(derivedKey[:16], keyBytes, iv)
	if err != nil {
		return nil, err
	}
	mac := crypto.Keccak256(derivedKey[16:32], cipherText)

	kdfParams := map[string]interface{}{
		"n":     scryptN,
		"r":     scryptR,
		"p":     scryptP,
		"dklen": scryptDKLen,
		"salt":  hex.EncodeToString(salt),
	}

	return json.Marshal(encryptedKeyJSONV3{
		Address: hex.EncodeToString(key.Address.Bytes()),
		Crypto: cryptoJSON{
			Cipher:       "aes-128-ctr",
			CipherText:   hex.EncodeToString(cipherText),
			CipherParams: cipherparamsJSON{IV: hex.EncodeToString(iv)},
			KDF:          keyHeaderKDF,
			KDFParams:    kdfParams,
			MAC:          hex.EncodeToString(mac),
		},
		ID:      key.ID.String(),
		Version: latestVersion,
	})
}

func decryptKey(keyjson []byte, password string) (*Key, error) {
	k := new(encryptedKeyJSONV3)
	if err := json.Unmarshal(keyjson, k); err != nil {
		return nil, err
	}
	if k.Version != latestVersion {
		return nil, fmt.Errorf("keystore version %d not supported", k.Version)
	}
	if k.Crypto.Cipher != "aes-128-ctr" {
		return nil, fmt.Errorf("cipher not supported: %v", k.Crypto.Cipher)
	}

	id, err := uuid.Parse(k.ID)
	if err != nil {
		return nil, err
	}

	mac, err := hex.DecodeString(k.Crypto.MAC)
	if err != nil {
		return nil, err
	}
	iv, err := hex.DecodeString(k.Crypto.CipherParams.IV)
	if err != nil {
		return nil, err
	}
	cipherText, err := hex.DecodeString(k.Crypto.CipherText)
	if err != nil {
		return nil, err
	}

	derivedKey, err := kdfKey(k.Crypto, password)
	if err != nil {
		return nil, err
	}

	calculatedMAC := crypto.Keccak256(derivedKey[16:32], cipherText)
	if !bytes.Equal(calculatedMAC, mac) {
		return nil, ErrDecrypt
	}

	plainText, err := aesCTRXOR(derivedKey[:16], cipherText, iv)
	if err != nil {
		return nil, err
	}

	priv, err := crypto.ToECDSA(plainText)
	if err != nil {
		return nil, err
	}

	key := &Key{
		ID:         id,
		Address:    crypto.PubkeyToAddress(priv.PublicKey),
		PrivateKey: priv,
	}
	if hex.EncodeToString(key.Address.Bytes()) != k.Address {
		return nil, fmt.Errorf("key content mismatch: have %s, want %s", key.Address, k.Address)
	}
	return key, nil
}

func kdfKey(c cryptoJSON, password string) ([]byte, error) {
	if c.KDF != keyHeaderKDF {
		return nil, fmt.Errorf("unsupported KDF: %s", c.KDF)
	}

	salt, err := hex.DecodeString(fmt.Sprint(c.KDFParams["salt"]))
	if err != nil {
		return nil, err
	}
	dkLen := ensureInt(c.KDFParams["dklen"])
	if dkLen < 32 {
		return nil, fmt.Errorf("derived key too short: %d", dkLen)
	}

	n := ensureInt(c.KDFParams["n"])
	r := ensureInt(c.KDFParams["r"])
	p := ensureInt(c.KDFParams["p"])
	return scrypt.Key([]byte(password), salt, n, r, p, dkLen)
}

// json numbers decode as float64
func ensureInt(x interface{}) int {
	switch v := x.(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func aesCTRXOR(key, inText, iv []byte) ([]byte, error) {
	aesBlock, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	stream := cipher.NewCTR(aesBlock, iv)
	outText := make([]byte, len(inText))
	stream.XORKeyStream(outText, inText)
	return outText, nil
}

func entropy(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// writeKeyFile writes through a temporary file in the same directory.
func writeKeyFile(file string, content []byte) error {
	const dirPerm = 0700
	if err := os.MkdirAll(filepath.Dir(file), dirPerm); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(file), "."+filepath.Base(file)+".tmp")
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	f.Close()
	return os.Rename(f.Name(), file)
}
