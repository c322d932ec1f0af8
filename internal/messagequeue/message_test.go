package messagequeue_test

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/messagequeue"
)

var (
	testTxHash     = common.HexToHash("0x1111111111111111111111111111111111111111111111111111111111111111")
	testIntentHash = common.HexToHash("0xabababababababababababababababababababababababababababababababab")
)

func TestMessage_Encoding(t *testing.T) {
	accountID := uuid.MustParse("5e9a1d3c-4d5b-4b5a-9a3e-0f1c2d3e4f50")

	tests := []struct {
		name string
		msg  *messagequeue.Message
		want string
	}{
		{
			name: "register master view seed",
			msg:  messagequeue.NewRegisterMasterViewSeed(accountID, common.HexToAddress("0x00000000000000000000000000000000000000aa"), domain.NewScalar(42)),
			want: `{"RegisterMasterViewSeed":{"account_id":"5e9a1d3c-4d5b-4b5a-9a3e-0f1c2d3e4f50","owner_address":"0x00000000000000000000000000000000000000aa","seed":"42"}}`,
		},
		{
			name: "live recovery id omits is_backfill",
			msg:  messagequeue.NewRegisterRecoveryID(domain.NewScalar(7), testTxHash, false),
			want: `{"RegisterRecoveryId":{"recovery_id":"7","tx_hash":"` + testTxHash.Hex() + `"}}`,
		},
		{
			name: "backfilled nullifier spend",
			msg:  messagequeue.NewNullifierSpend(domain.NewScalar(9), testTxHash, true),
			want: `{"NullifierSpend":{"nullifier":"9","tx_hash":"` + testTxHash.Hex() + `","is_backfill":true}}`,
		},
		{
			name: "public intent update",
			msg:  messagequeue.NewUpdatePublicIntent(testIntentHash, 3, testTxHash, false),
			want: `{"UpdatePublicIntent":{"intent_hash":"` + testIntentHash.Hex() + `","version":3,"tx_hash":"` + testTxHash.Hex() + `"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := messagequeue.Encode(tt.msg)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(body))

			decoded, err := messagequeue.Decode(body)
			require.NoError(t, err)
			assert.Equal(t, tt.msg, decoded)
		})
	}
}

func TestMessage_DecodeDefaultsBackfillToFalse(t *testing.T) {
	msg, err := messagequeue.Decode([]byte(`{"CreatePublicIntent":{"intent_hash":"` + testIntentHash.Hex() + `","tx_hash":"` + testTxHash.Hex() + `"}}`))
	require.NoError(t, err)

	assert.Equal(t, messagequeue.KindCreatePublicIntent, msg.Kind())
	assert.False(t, msg.IsBackfill())
}

func TestMessage_DecodeAcceptsHexScalars(t *testing.T) {
	msg, err := messagequeue.Decode([]byte(`{"NullifierSpend":{"nullifier":"0x0a","tx_hash":"` + testTxHash.Hex() + `"}}`))
	require.NoError(t, err)
	assert.True(t, msg.NullifierSpend.Nullifier.Equal(domain.NewScalar(10)))
}

func TestMessage_DecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "empty object", body: `{}`, wantErr: messagequeue.ErrEmptyMessage},
		{name: "two variants", body: `{"NullifierSpend":{},"RegisterRecoveryId":{}}`, wantErr: messagequeue.ErrAmbiguousMessage},
		{name: "unknown variant", body: `{"Transfer":{}}`},
		{name: "not json", body: `not json`},
		{name: "bad scalar", body: `{"NullifierSpend":{"nullifier":"abc","tx_hash":"` + testTxHash.Hex() + `"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := messagequeue.Decode([]byte(tt.body))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestMessage_Validate(t *testing.T) {
	assert.ErrorIs(t, (&messagequeue.Message{}).Validate(), messagequeue.ErrEmptyMessage)

	both := messagequeue.NewNullifierSpend(domain.NewScalar(1), testTxHash, false)
	both.RegisterRecoveryID = &messagequeue.RegisterRecoveryID{}
	assert.ErrorIs(t, both.Validate(), messagequeue.ErrAmbiguousMessage)

	_, err := messagequeue.Encode(both)
	assert.ErrorIs(t, err, messagequeue.ErrAmbiguousMessage)
}

func TestMessage_DedupID(t *testing.T) {
	live := messagequeue.NewNullifierSpend(domain.NewScalar(5), testTxHash, false)
	backfill := messagequeue.NewNullifierSpend(domain.NewScalar(5), common.Hash{}, true)

	assert.Equal(t, "nullifier:5", live.DedupID())
	assert.Equal(t, live.FactKey(), backfill.FactKey())
	assert.NotEqual(t, live.DedupID(), backfill.DedupID())

	v1 := messagequeue.NewUpdatePublicIntent(testIntentHash, 1, testTxHash, false)
	v2 := messagequeue.NewUpdatePublicIntent(testIntentHash, 2, testTxHash, false)
	assert.NotEqual(t, v1.FactKey(), v2.FactKey())

	cancel := messagequeue.NewCancelPublicIntent(testIntentHash, 1, testTxHash, false)
	assert.NotEqual(t, v1.FactKey(), cancel.FactKey())
}

func TestMessage_JSONInsideEnvelope(t *testing.T) {
	var envelope struct {
		Message *messagequeue.Message `json:"message"`
		Group   string                `json:"group"`
	}

	err := json.Unmarshal([]byte(`{"group":"g","message":{"RegisterRecoveryId":{"recovery_id":"3","tx_hash":"`+testTxHash.Hex()+`"}}}`), &envelope)
	require.NoError(t, err)
	require.NotNil(t, envelope.Message)
	assert.Equal(t, messagequeue.KindRegisterRecoveryID, envelope.Message.Kind())
	assert.Equal(t, "g", envelope.Group)
}
