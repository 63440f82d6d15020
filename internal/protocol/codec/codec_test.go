package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/yewchat/internal/protocol"
)

func TestEncode_WireShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  *protocol.Envelope
		want string
	}{
		{
			name: "users",
			env:  protocol.NewUsers([]string{"alice", "bob"}),
			want: `{"messageType":"users","dataArray":["alice","bob"],"data":null}`,
		},
		{
			name: "empty users list",
			env:  protocol.NewUsers(nil),
			want: `{"messageType":"users","dataArray":[],"data":null}`,
		},
		{
			name: "register",
			env:  protocol.NewRegister("alice"),
			want: `{"messageType":"register","dataArray":null,"data":"alice"}`,
		},
		{
			name: "message keeps html characters",
			env:  protocol.NewMessage("<b>hi</b> & bye"),
			want: `{"messageType":"message","dataArray":null,"data":"<b>hi</b> & bye"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Encode(tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTyping_InnerShape(t *testing.T) {
	t.Parallel()

	env, err := NewTyping("alice", true)
	require.NoError(t, err)

	got, err := Encode(env)
	require.NoError(t, err)
	assert.Equal(t, `{"messageType":"typing","dataArray":null,"data":"{\"username\":\"alice\",\"isTyping\":true}"}`, got)
}

func TestNewChatMessage_InnerShape(t *testing.T) {
	t.Parallel()

	env, err := NewChatMessage(protocol.MessageData{From: "bob", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, `{"from":"bob","message":"hi","timestamp":null}`, env.Text())

	env, err = NewChatMessage(protocol.MessageData{From: "bob", Message: "hi", Timestamp: protocol.StringPtr("12:30")})
	require.NoError(t, err)
	assert.Equal(t, `{"from":"bob","message":"hi","timestamp":"12:30"}`, env.Text())
}

func TestEncode_RejectsMismatchedPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  *protocol.Envelope
	}{
		{"nil envelope", nil},
		{"unknown kind", &protocol.Envelope{Kind: "presence", Data: protocol.StringPtr("x")}},
		{"users without list", &protocol.Envelope{Kind: protocol.KindUsers}},
		{"users with string", &protocol.Envelope{Kind: protocol.KindUsers, DataArray: []string{}, Data: protocol.StringPtr("x")}},
		{"register with list", &protocol.Envelope{Kind: protocol.KindRegister, DataArray: []string{"a"}}},
		{"message without data", &protocol.Envelope{Kind: protocol.KindMessage}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Encode(tt.env)
			assert.ErrorIs(t, err, protocol.ErrMalformedEnvelope)
		})
	}
}

func TestDecode_Valid(t *testing.T) {
	t.Parallel()

	env, err := Decode(`{"messageType":"users","dataArray":["a","b"],"data":null}`)
	require.NoError(t, err)
	assert.Equal(t, protocol.KindUsers, env.Kind)
	assert.Equal(t, []string{"a", "b"}, env.DataArray)
	assert.Nil(t, env.Data)

	// 缺省字段视为 null
	env, err = Decode(`{"messageType":"register","data":"alice"}`)
	require.NoError(t, err)
	assert.Equal(t, protocol.KindRegister, env.Kind)
	assert.Equal(t, "alice", env.Text())
	assert.Nil(t, env.DataArray)
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	inputs := map[string]string{
		"not json":            `hello`,
		"empty":               ``,
		"json null":           `null`,
		"array":               `[]`,
		"missing kind":        `{"dataArray":null,"data":"x"}`,
		"unknown kind":        `{"messageType":"presence","dataArray":null,"data":"x"}`,
		"uppercase kind":      `{"messageType":"Users","dataArray":[],"data":null}`,
		"kind wrong type":     `{"messageType":1,"dataArray":null,"data":"x"}`,
		"users without list":  `{"messageType":"users","dataArray":null,"data":null}`,
		"users with string":   `{"messageType":"users","dataArray":null,"data":"a"}`,
		"users with both":     `{"messageType":"users","dataArray":["a"],"data":"a"}`,
		"list of numbers":     `{"messageType":"users","dataArray":[1,2],"data":null}`,
		"message with list":   `{"messageType":"message","dataArray":["a"],"data":null}`,
		"typing without data": `{"messageType":"typing","dataArray":null,"data":null}`,
		"data wrong type":     `{"messageType":"message","dataArray":null,"data":{"from":"a"}}`,
		"unknown field":       `{"messageType":"register","dataArray":null,"data":"a","extra":1}`,
		"trailing value":      `{"messageType":"register","dataArray":null,"data":"a"}{}`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			env, err := Decode(input)
			assert.Nil(t, env)
			assert.ErrorIs(t, err, protocol.ErrMalformedEnvelope)
		})
	}
}

func TestRoundTrip_TextToEnvelopeToText(t *testing.T) {
	t.Parallel()

	texts := []string{
		`{"messageType":"users","dataArray":[],"data":null}`,
		`{"messageType":"users","dataArray":["alice","bob","carol"],"data":null}`,
		`{"messageType":"register","dataArray":null,"data":"alice"}`,
		`{"messageType":"message","dataArray":null,"data":"{\"from\":\"a\",\"message\":\"http://x/y.gif\",\"timestamp\":null}"}`,
		`{"messageType":"typing","dataArray":null,"data":"{\"username\":\"a\",\"isTyping\":false}"}`,
		`{"messageType":"message","dataArray":null,"data":"héllo 😀 <tag>"}`,
	}

	for _, text := range texts {
		env, err := Decode(text)
		require.NoError(t, err, text)
		got, err := Encode(env)
		require.NoError(t, err)
		assert.Equal(t, text, got)
	}
}

func TestRoundTrip_EnvelopeToTextToEnvelope(t *testing.T) {
	t.Parallel()

	typing, err := NewTyping("bob", false)
	require.NoError(t, err)
	chat, err := NewChatMessage(protocol.MessageData{From: "a", Message: "b", Timestamp: protocol.StringPtr("t")})
	require.NoError(t, err)

	envs := []*protocol.Envelope{
		protocol.NewUsers(nil),
		protocol.NewUsers([]string{"x", "y"}),
		protocol.NewRegister(""),
		protocol.NewRegister("alice"),
		protocol.NewMessage("   "),
		typing,
		chat,
	}

	for _, env := range envs {
		text, err := Encode(env)
		require.NoError(t, err)
		got, err := Decode(text)
		require.NoError(t, err)
		assert.Equal(t, env, got)
	}
}

func TestDecodeMessageData(t *testing.T) {
	t.Parallel()

	md, err := DecodeMessageData(`{"from":"alice","message":"hi","timestamp":"10:00"}`)
	require.NoError(t, err)
	assert.Equal(t, "alice", md.From)
	assert.Equal(t, "hi", md.Message)
	require.NotNil(t, md.Timestamp)
	assert.Equal(t, "10:00", *md.Timestamp)

	md, err = DecodeMessageData(`{"from":"alice","message":"hi"}`)
	require.NoError(t, err)
	assert.Nil(t, md.Timestamp)

	for _, bad := range []string{
		`hi`,
		`{"from":"alice"}`,
		`{"message":"hi"}`,
		`{"from":1,"message":"hi"}`,
		`{"from":"a","message":"hi","extra":true}`,
	} {
		_, err := DecodeMessageData(bad)
		assert.ErrorIs(t, err, protocol.ErrMalformedPayload, bad)
	}
}

func TestDecodeTypingStatus(t *testing.T) {
	t.Parallel()

	ts, err := DecodeTypingStatus(`{"username":"bob","isTyping":true}`)
	require.NoError(t, err)
	assert.Equal(t, protocol.TypingStatus{Username: "bob", IsTyping: true}, *ts)

	for _, bad := range []string{
		``,
		`{"username":"bob"}`,
		`{"isTyping":true}`,
		`{"username":"bob","isTyping":"yes"}`,
		`{"username":"bob","is_typing":true}`,
	} {
		_, err := DecodeTypingStatus(bad)
		assert.ErrorIs(t, err, protocol.ErrMalformedPayload, bad)
	}
}
