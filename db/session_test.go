package db

import (
	"bytes"
	"encoding/gob"
	"testing"
	"time"

	"github.com/quillcms/quill/qn"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
)

func TestLoadSessionBytes(t *testing.T) {
	var valid bytes.Buffer
	obj := make(map[any]any)
	obj["uid"] = int64(42)
	obj["time"] = time.Now().Unix()
	enc := gob.NewEncoder(&valid)
	if err := enc.Encode(obj); err != nil {
		panic(err)
	}

	tests := []struct {
		name    string
		b       []byte
		want    *qn.SessionData
		wantErr bool
	}{
		{
			"Valid session bytes",
			valid.Bytes(),
			&qn.SessionData{
				UID:  42,
				Time: obj["time"].(int64),
			},
			false,
		},
		{
			"Invalid session bytes",
			[]byte("abc"),
			nil,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadSessionBytes(tt.b)
			assert.Equal(t, tt.wantErr, err != nil, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadSession(t *testing.T) {
	want := qn.SessionData{UID: 7, Time: time.Now().Unix()}
	valid := sessions.Session{Values: map[any]any{
		"uid":  want.UID,
		"time": want.Time,
	}}
	invalid := sessions.Session{Values: map[any]any{
		"UID":  want.UID,
		"time": want.Time,
	}}

	tests := []struct {
		name    string
		session *sessions.Session
		want    *qn.SessionData
		wantErr bool
	}{
		{"Valid session", &valid, &want, false},
		{"Invalid session", &invalid, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := qn.LoadSession(tt.session)
			assert.Equal(t, tt.wantErr, err != nil, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
