package ledgerrpc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestJSONCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestJSONCodec_WireNames(t *testing.T) {
	v := int64(1000)
	d := "descricao"
	raw, err := jsonCodec{}.Marshal(&ApplyTransactionRequest{AccountID: 1, Value: &v, Kind: "c", Description: &d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"account_id": 1, "valor": 1000, "tipo": "c", "descricao": "descricao"}`, string(raw))

	var resp ReadStatementResponse
	require.NoError(t, jsonCodec{}.Unmarshal([]byte(`{
		"saldo": {"total": -9098, "limite": 100000, "data_extrato": "2024-01-17T02:34:41.217753Z"},
		"ultimas_transacoes": [{"valor": 10, "tipo": "c", "descricao": "descricao"}]
	}`), &resp))
	assert.Equal(t, int64(-9098), resp.Balance.Total)
	assert.True(t, resp.Balance.StatementAt.Equal(time.Date(2024, 1, 17, 2, 34, 41, 217753000, time.UTC)))
	assert.Equal(t, []Transaction{{Value: 10, Kind: "c", Description: "descricao"}}, resp.Transactions)
}
