package syncx

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 keeps objects in memory behind the s3Client seam.
type fakeS3 struct {
	objects map[string]string
	getErr  error
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	content, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(content))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = string(data)
	return &s3.PutObjectOutput{}, nil
}

func newFakeS3Backend() (*S3Backend, *fakeS3) {
	fake := &fakeS3{objects: map[string]string{}}
	return &S3Backend{client: fake, bucket: "chronicle", key: "chronicle_sync.enc"}, fake
}

func TestS3Backend_ReadMissingObject(t *testing.T) {
	b, _ := newFakeS3Backend()
	content, err := b.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", content)
}

func TestS3Backend_WriteThenRead(t *testing.T) {
	b, _ := newFakeS3Backend()
	ctx := context.Background()

	require.NoError(t, b.Write(ctx, "token-1\n"))
	content, err := b.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-1\n", content)
}

func TestS3Backend_Append(t *testing.T) {
	b, _ := newFakeS3Backend()
	ctx := context.Background()

	require.NoError(t, b.Append(ctx, "one"))
	require.NoError(t, b.Append(ctx, "two"))

	content, err := b.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", content)
}

func TestS3Backend_TransportErrorWrapsErrBackend(t *testing.T) {
	b, fake := newFakeS3Backend()
	fake.getErr = assert.AnError

	_, err := b.Read(context.Background())
	require.ErrorIs(t, err, ErrBackend)
}
