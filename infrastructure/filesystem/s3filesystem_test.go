package filesystem

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryBucket struct {
	objects map[string][]byte
}

func (m *memoryBucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b, ok := m.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (m *memoryBucket) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.objects[aws.ToString(in.Key)] = b
	return &s3.PutObjectOutput{}, nil
}

func (m *memoryBucket) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := &s3.ListObjectsV2Output{}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func TestS3RoundTrip(t *testing.T) {
	ctx := context.Background()
	bucket := &memoryBucket{objects: map[string][]byte{}}
	fs := NewS3(bucket, "archive")

	require.NoError(t, fs.WriteFile(ctx, "2026/10/ponto_eletronico_2026-10-17.txt", "text/plain", []byte("Registros")))
	require.NoError(t, fs.WriteFile(ctx, "2026/09/ponto_eletronico_2026-09-30.txt", "text/plain", []byte("x")))

	var out bytes.Buffer
	require.NoError(t, fs.ReadFile(ctx, "2026/10/ponto_eletronico_2026-10-17.txt", &out))
	assert.Equal(t, "Registros", out.String())

	keys, err := fs.ListFiles(ctx, "2026/10/")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026/10/ponto_eletronico_2026-10-17.txt"}, keys)

	err = fs.ReadFile(ctx, "missing", &out)
	assert.ErrorContains(t, err, "failed to get object missing from bucket archive")
}
