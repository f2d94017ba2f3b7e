package crypto

import (
	"bytes"
	"fmt"
	"hash"
	"math"

	"github.com/tink-crypto/tink-go/v2/insecurecleartextkeyset"
	"github.com/tink-crypto/tink-go/v2/keyset"
	"github.com/tink-crypto/tink-go/v2/mac"
	commonpb "github.com/tink-crypto/tink-go/v2/proto/common_go_proto"
	hmacpb "github.com/tink-crypto/tink-go/v2/proto/hmac_go_proto"
	tinkpb "github.com/tink-crypto/tink-go/v2/proto/tink_go_proto"
	"github.com/tink-crypto/tink-go/v2/subtle"
	tinkrandom "github.com/tink-crypto/tink-go/v2/subtle/random"
	"google.golang.org/protobuf/proto"

	"github.com/idelchi/minicrypt/pkg/minicrypt"
	"github.com/idelchi/minicrypt/pkg/secure"
)

const hmacKeyTypeURL = "type.googleapis.com/google.crypto.tink.HmacKey"

// tinkBackend delegates to tink-go. Tink offers no MD5 and rejects HMAC keys
// shorter than 16 bytes.
type tinkBackend struct{}

func (tinkBackend) Name() string { return string(Tink) }

func (tinkBackend) Random(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if uint64(len(p)) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: request of %d bytes", ErrShortRead, len(p))
	}

	b := tinkrandom.GetRandomBytes(uint32(len(p)))
	n := copy(p, b)
	secure.Zero(b)

	return n, nil
}

func (tinkBackend) NewHash(alg Algorithm) (hash.Hash, error) {
	var name string

	switch alg {
	case SHA256:
		name = "SHA256"
	case SHA1:
		name = "SHA1"
	default:
		return nil, fmt.Errorf("%w: %q with tink", ErrUnsupportedAlgorithm, alg)
	}

	newHash := subtle.GetHashFunc(name)
	if newHash == nil {
		return nil, fmt.Errorf("%w: %q with tink", ErrUnsupportedAlgorithm, alg)
	}

	return newHash(), nil
}

// HMAC keys the primitive with the block-normalized key. HMAC over the
// normalized key equals HMAC over the raw key, and it satisfies tink's
// 16-byte minimum for every input.
func (tinkBackend) HMAC(key, data []byte) ([]byte, error) {
	normalized := minicrypt.NormalizeKey(key)
	defer secure.Zero(normalized[:])

	handle, err := newHMACKeyHandle(normalized[:])
	if err != nil {
		return nil, err
	}

	primitive, err := mac.New(handle)
	if err != nil {
		return nil, fmt.Errorf("creating MAC primitive: %w", err)
	}

	tag, err := primitive.ComputeMAC(data)
	if err != nil {
		return nil, fmt.Errorf("computing MAC: %w", err)
	}

	return tag, nil
}

// DeriveKey uses x/crypto: tink has no password-based KDF.
func (tinkBackend) DeriveKey(password, salt []byte, rounds int, out []byte) error {
	return derivePBKDF2(password, salt, rounds, out)
}

// newHMACKeyHandle wraps a raw key into a single-key HMAC-SHA256 keyset with
// RAW output prefix, so the tag equals a plain HMAC.
func newHMACKeyHandle(key []byte) (*keyset.Handle, error) {
	hmacKey := &hmacpb.HmacKey{
		Version: 0,
		Params: &hmacpb.HmacParams{
			Hash:    commonpb.HashType_SHA256,
			TagSize: minicrypt.SHA256Size,
		},
		KeyValue: key,
	}

	serializedKey, err := proto.Marshal(hmacKey)
	if err != nil {
		return nil, fmt.Errorf("serializing HmacKey: %w", err)
	}

	defer secure.Zero(serializedKey)

	keySet := &tinkpb.Keyset{
		PrimaryKeyId: 1,
		Key: []*tinkpb.Keyset_Key{
			{
				KeyData: &tinkpb.KeyData{
					TypeUrl:         hmacKeyTypeURL,
					Value:           serializedKey,
					KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
				},
				Status:           tinkpb.KeyStatusType_ENABLED,
				KeyId:            1,
				OutputPrefixType: tinkpb.OutputPrefixType_RAW,
			},
		},
	}

	serializedKeyset, err := proto.Marshal(keySet)
	if err != nil {
		return nil, fmt.Errorf("serializing keyset: %w", err)
	}

	defer secure.Zero(serializedKeyset)

	handle, err := insecurecleartextkeyset.Read(keyset.NewBinaryReader(bytes.NewReader(serializedKeyset)))
	if err != nil {
		return nil, fmt.Errorf("creating keyset handle: %w", err)
	}

	return handle, nil
}
