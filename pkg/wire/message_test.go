package wire

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "GET", OpGet.String())
	assert.Equal(t, "PUT", OpPut.String())
	assert.Equal(t, "UNKNOWN", Operation(9).String())
	assert.True(t, OpGet.IsValid())
	assert.True(t, OpPut.IsValid())
	assert.False(t, Operation(0).IsValid())
}

func TestRequestValidate(t *testing.T) {
	e, err := NewEndpoint("http", "localhost:11111", "telescope", 0)
	require.NoError(t, err)

	valid := Request{
		Endpoint:            e,
		Attribute:           "connected",
		Operation:           OpGet,
		Params:              url.Values{},
		ClientID:            12,
		ClientTransactionID: 1,
	}
	assert.NoError(t, valid.Validate())
	assert.Equal(t, "http://localhost:11111/api/v1/telescope/0/connected", valid.URL())

	noAttr := valid
	noAttr.Attribute = ""
	assert.Error(t, noAttr.Validate())

	badOp := valid
	badOp.Operation = Operation(7)
	assert.Error(t, badOp.Validate())

	zeroTx := valid
	zeroTx.ClientTransactionID = 0
	assert.Error(t, zeroTx.Validate())
}

func TestFormatBool(t *testing.T) {
	assert.Equal(t, "True", FormatBool(true))
	assert.Equal(t, "False", FormatBool(false))
}

func TestFormatUint(t *testing.T) {
	assert.Equal(t, "0", FormatUint(0))
	assert.Equal(t, "4294967295", FormatUint(4294967295))
}
