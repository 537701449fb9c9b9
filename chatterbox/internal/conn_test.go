package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFrame(t *testing.T) {
	f, err := DecodeFrame([]byte(`["message", "{\"message\": \"hi\", \"sender\": \"bob\"}"]`))
	require.NoError(t, err)
	assert.Equal(t, "message", f.Mode)
	assert.JSONEq(t, `{"message":"hi","sender":"bob"}`, string(f.Data))

	f, err = DecodeFrame([]byte(`["names", {"message": ["alice", "bob"]}]`))
	require.NoError(t, err)
	assert.Equal(t, "names", f.Mode)
	assert.JSONEq(t, `{"message":["alice","bob"]}`, string(f.Data))
}

func TestDecodeFrameMalformed(t *testing.T) {
	for _, data := range []string{
		`not json`,
		`{"mode": "message"}`,
		`["message"]`,
		`["message", "{}", "extra"]`,
		`[1, "{}"]`,
	} {
		_, err := DecodeFrame([]byte(data))
		assert.ErrorIs(t, err, ErrMalformedFrame, "data %s", data)
	}
}
